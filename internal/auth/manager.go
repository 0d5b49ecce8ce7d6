package auth

import (
	"context"
	"fmt"
	"net/url"

	log "github.com/sirupsen/logrus"
)

// Resolution is the outcome of resolving the token for a freshly loaded page.
type Resolution struct {
	// Token is the active bearer token, empty when unauthenticated.
	Token string
	// Fragment is what the page URL's fragment parsed to.
	Fragment Fragment
	// CleanURL is the page URL with its fragment removed.
	CleanURL string
	// DiscardedStored reports whether a previously stored token was cleared.
	DiscardedStored bool
}

// Authenticated reports whether resolution produced a token.
func (r Resolution) Authenticated() bool {
	return r.Token != ""
}

// Manager resolves and clears the token held in a Store slot.
type Manager struct {
	store Store
	log   *log.Entry
}

// NewManager creates a Manager backed by store.
func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		log:   log.WithField("component", "auth"),
	}
}

// Resolve determines the active token when a page is loaded at pageURL.
//
// A token left in the slot by an earlier page load is never reused: it is
// deleted first. If the fragment carries an access_token, that token becomes
// active and is written to the slot. A denied or malformed fragment leaves
// the page unauthenticated and returns ErrAccessDenied or
// ErrMalformedFragment alongside a Resolution whose CleanURL is still valid.
func (m *Manager) Resolve(ctx context.Context, slot, pageURL string) (Resolution, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return Resolution{}, fmt.Errorf("parsing page URL: %w", err)
	}

	res := Resolution{
		Fragment: ParseFragment(u.EscapedFragment()),
		CleanURL: stripFragment(u),
	}

	_, stored, err := m.store.Get(ctx, slot)
	if err != nil {
		return res, fmt.Errorf("reading token slot: %w", err)
	}
	if stored {
		if err := m.store.Delete(ctx, slot); err != nil {
			return res, fmt.Errorf("clearing token slot: %w", err)
		}
		res.DiscardedStored = true
		m.log.Debug("Discarded stored token")
	}

	switch res.Fragment.Kind {
	case FragmentToken:
		if err := m.store.Set(ctx, slot, res.Fragment.AccessToken); err != nil {
			return res, fmt.Errorf("saving token: %w", err)
		}
		res.Token = res.Fragment.AccessToken
		m.log.WithFields(log.Fields{
			"token_type": res.Fragment.TokenType,
			"expires_in": res.Fragment.ExpiresIn,
		}).Info("Captured access token from redirect")
	case FragmentDenied:
		m.log.WithFields(log.Fields{
			"error": res.Fragment.Error,
			"state": res.Fragment.State,
		}).Info("Authorization denied")
		return res, fmt.Errorf("%w: %s", ErrAccessDenied, res.Fragment.Error)
	case FragmentMalformed:
		return res, ErrMalformedFragment
	}

	return res, nil
}

// Logout deletes the token slot.
func (m *Manager) Logout(ctx context.Context, slot string) error {
	if err := m.store.Delete(ctx, slot); err != nil {
		return fmt.Errorf("clearing token slot: %w", err)
	}
	m.log.Info("Logged out")
	return nil
}

// stripFragment returns u rendered without its fragment.
func stripFragment(u *url.URL) string {
	clean := *u
	clean.Fragment = ""
	clean.RawFragment = ""
	return clean.String()
}
