// Package spotify provides a wrapper around the Spotify Web API.
package spotify

import (
	"context"
	"net/http"
	"time"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

const requestTimeout = 10 * time.Second

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api *spotify.Client
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client) *Client {
	return &Client{api: api}
}

// NewForToken creates a client that sends token as a bearer credential on
// every request. The token is never refreshed. A non-empty baseURL replaces
// the default API root and must end with a slash.
func NewForToken(ctx context.Context, token, baseURL string) *Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: requestTimeout})
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})

	var opts []spotify.ClientOption
	if baseURL != "" {
		opts = append(opts, spotify.WithBaseURL(baseURL))
	}

	return New(spotify.New(oauth2.NewClient(ctx, src), opts...))
}
