package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/urfave/cli/v3"

	"github.com/justestif/blocify/internal/auth"
	"github.com/justestif/blocify/internal/config"
	"github.com/justestif/blocify/internal/dashboard"
	"github.com/justestif/blocify/internal/render"
	"github.com/justestif/blocify/internal/spotify"
)

// ErrNotLoggedIn is returned by top when neither --url nor --token yields a token.
var ErrNotLoggedIn = errors.New("not logged in: run `blocify login-url`, authorize, then pass the redirected URL with --url")

func loginURLCommand() *cli.Command {
	return &cli.Command{
		Name:  "login-url",
		Usage: "Print the Spotify authorization URL",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireClientID(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, auth.LoginURL(cfg.SpotifyClientID, cfg.RedirectURI))
			return nil
		},
	}
}

func topCommand() *cli.Command {
	return &cli.Command{
		Name:  "top",
		Usage: "Print your top artists and tracks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "Redirected URL from the Spotify login, fragment included",
			},
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "Access token to use directly",
			},
			&cli.StringFlag{
				Name:    "range",
				Aliases: []string{"r"},
				Usage:   "Time range: long_term, medium_term or short_term",
				Value:   string(spotify.LongTerm),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			rng, err := spotify.ParseTimeRange(cmd.String("range"))
			if err != nil {
				return err
			}

			store, err := cliStore(cfg)
			if err != nil {
				return err
			}

			pageURL := cmd.String("url")
			if token := cmd.String("token"); token != "" {
				pageURL = "#access_token=" + url.QueryEscape(token)
			}

			return runTop(ctx, cmd.Root().Writer, store, fetcherFactory(ctx, cfg.APIBase()), pageURL, rng)
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Forget the stored access token",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := cliStore(cfg)
			if err != nil {
				return err
			}
			if err := auth.NewManager(store).Logout(ctx, auth.TokenKey); err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, "Logged out.")
			return nil
		},
	}
}

// cliStore returns the file store named by TOKEN_FILE, or the default one.
func cliStore(cfg *config.Config) (*auth.FileStore, error) {
	if cfg.TokenFile != "" {
		return auth.NewFileStore(cfg.TokenFile), nil
	}
	return auth.DefaultFileStore()
}

// runTop resolves the token for pageURL, loads top items and prints them.
func runTop(ctx context.Context, out io.Writer, store auth.Store, newFetcher dashboard.FetcherFactory, pageURL string, rng spotify.TimeRange) error {
	res, err := auth.NewManager(store).Resolve(ctx, auth.TokenKey, pageURL)
	if err != nil {
		return err
	}
	if !res.Authenticated() {
		return ErrNotLoggedIn
	}

	view := dashboard.New("cli", res.Token, newFetcher)
	snap, err := view.LoadTopItems(ctx, rng)
	if err != nil {
		return err
	}

	tiers, err := render.ArtistTiers(snap.Artists)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, render.FormatTopItems(rng, tiers, render.TrackLinks(snap.Tracks)))
	return err
}
