package web

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/justestif/blocify/internal/auth"
	"github.com/justestif/blocify/internal/dashboard"
	"github.com/justestif/blocify/internal/render"
	"github.com/justestif/blocify/internal/reporting"
	"github.com/justestif/blocify/internal/spotify"
)

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	loginURL  string
	sessions  *auth.Manager
	views     *dashboard.Registry
	templates *Templates
	log       *log.Entry
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(loginURL string, sessions *auth.Manager, views *dashboard.Registry, templates *Templates) *Handlers {
	return &Handlers{
		loginURL:  loginURL,
		sessions:  sessions,
		views:     views,
		templates: templates,
		log:       log.WithField("component", "web"),
	}
}

// Home handles the page shell (GET /). The app itself is mounted by htmx
// once the page has loaded, so the fragment Spotify appended can be read.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	browserID(w, r)

	data := HomePageData{
		PageData: PageData{Title: "BlocIFY!"},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, "home", data); err != nil {
		h.log.WithError(err).Error("Failed to render home page")
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
}

// Mount resolves the active token for a fresh page view (POST /session/mount).
// The form field href carries the browser's full location, fragment included.
func (h *Handlers) Mount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	id := browserID(w, r)
	href := r.PostFormValue("href")

	res, err := h.sessions.Resolve(r.Context(), auth.SlotKey(id), href)

	var flash *FlashMessage
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAccessDenied):
			h.log.WithError(err).Info("Spotify login was denied")
			flash = &FlashMessage{Type: "warning", Message: "Spotify login was cancelled."}
		case errors.Is(err, auth.ErrMalformedFragment):
			h.log.WithError(err).Warn("Malformed redirect fragment")
			flash = &FlashMessage{Type: "error", Message: "Could not read the Spotify login response. Please try again."}
		default:
			h.log.WithError(err).Error("Failed to resolve token")
			reporting.CaptureError(r.Context(), err)
			flash = &FlashMessage{Type: "error", Message: "Something went wrong while logging in."}
		}
	}

	view := h.views.Create(res.Token)
	h.log.WithFields(log.Fields{
		"view":          view.ID(),
		"authenticated": res.Authenticated(),
		"fragment":      res.Fragment.Kind.String(),
	}).Debug("Mounted page view")

	// Drop the fragment from the address bar so the token is not left visible.
	if res.CleanURL != "" && res.CleanURL != href {
		w.Header().Set("HX-Replace-Url", res.CleanURL)
	}

	h.renderApp(w, view.ID(), view.Snapshot(), flash)
}

// Top loads the user's top artists and tracks for a range (POST /top).
func (h *Handlers) Top(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	view := h.views.Get(r.PostFormValue("view"))
	if view == nil {
		// The view expired or the server restarted; start over.
		w.Header().Set("HX-Refresh", "true")
		http.Error(w, "Page view expired", http.StatusGone)
		return
	}

	rng, err := spotify.ParseTimeRange(r.PostFormValue("range"))
	if err != nil {
		http.Error(w, "Unknown time range", http.StatusBadRequest)
		return
	}

	var flash *FlashMessage
	snap, err := view.LoadTopItems(r.Context(), rng)
	if err != nil {
		h.log.WithFields(log.Fields{"view": view.ID(), "range": string(rng)}).WithError(err).Error("Failed to load top items")
		reporting.CaptureError(r.Context(), err)
		flash = &FlashMessage{Type: "error", Message: "Could not load your top items from Spotify."}
	}

	h.renderApp(w, view.ID(), snap, flash)
}

// Logout forgets the page view's token and the browser's slot (POST /session/logout).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	if id := r.PostFormValue("view"); id != "" {
		if view := h.views.Get(id); view != nil {
			view.Logout()
		}
		h.views.Delete(id)
	}

	if err := h.sessions.Logout(r.Context(), auth.SlotKey(browserID(w, r))); err != nil {
		h.log.WithError(err).Error("Failed to clear token slot")
		reporting.CaptureError(r.Context(), err)
		http.Error(w, "Failed to log out", http.StatusInternalServerError)
		return
	}

	if isHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Health reports liveness (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// renderApp renders the app partial for a snapshot.
func (h *Handlers) renderApp(w http.ResponseWriter, viewID string, snap dashboard.Snapshot, flash *FlashMessage) {
	data := AppData{
		ViewID:        viewID,
		Authenticated: snap.Authenticated,
		LoginURL:      h.loginURL,
		Ranges:        rangeOptions(snap.Range),
		Tracks:        render.TrackLinks(snap.Tracks),
		Flash:         flash,
	}
	// The heading names the range the lists were loaded for, which lags the
	// selected button after a failed load.
	if snap.Loaded != "" {
		data.RangeLabel = snap.Loaded.Label()
	}

	if len(snap.Artists) > 0 {
		data.HasTopItems = true
		tiers, err := render.ArtistTiers(snap.Artists)
		if err != nil {
			h.log.WithError(err).Warn("Cannot lay out artist tiles")
			if flash == nil {
				data.Flash = &FlashMessage{Type: "warning", Message: "Some artists could not be displayed."}
			}
		} else {
			data.Tiers = tiers
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.RenderPartial(w, "app", data); err != nil {
		h.log.WithError(err).Error("Failed to render app")
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// rangeOptions lists the range buttons with the current one selected.
func rangeOptions(selected spotify.TimeRange) []RangeOption {
	ranges := spotify.TimeRanges()
	opts := make([]RangeOption, len(ranges))
	for i, r := range ranges {
		opts[i] = RangeOption{
			Value:    string(r),
			Label:    r.Label(),
			Selected: r == selected,
		}
	}
	return opts
}
