// Package auth resolves the Spotify access token captured by the implicit
// grant redirect and keeps it in a persistent key-value slot.
package auth

import (
	"errors"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// TokenKey is the storage key holding the bearer token.
const TokenKey = "token"

var (
	// ErrMalformedFragment is returned when a redirect fragment is present but
	// carries no usable access_token.
	ErrMalformedFragment = errors.New("redirect fragment has no access_token")

	// ErrAccessDenied is returned when the authorization server redirected
	// back with an error instead of a token.
	ErrAccessDenied = errors.New("spotify authorization denied")
)

// LoginURL returns the authorize endpoint URL for the implicit grant flow.
// The user is sent back to redirectURI with the token in the URL fragment.
func LoginURL(clientID, redirectURI string) string {
	auth := spotifyauth.New(
		spotifyauth.WithClientID(clientID),
		spotifyauth.WithRedirectURL(redirectURI),
		spotifyauth.WithScopes(spotifyauth.ScopeUserTopRead),
	)

	// Empty state keeps the parameter out of the URL.
	return auth.AuthURL("", oauth2.SetAuthURLParam("response_type", "token"))
}

// SlotKey returns the storage key for a browser's token slot.
func SlotKey(browserID string) string {
	return browserID + ":" + TokenKey
}
