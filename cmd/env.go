package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worktracker/internal/config"
	"github.com/Tiliavir/worktracker/internal/prompt"
	"github.com/Tiliavir/worktracker/internal/render"
	"github.com/Tiliavir/worktracker/internal/storage"
	"github.com/Tiliavir/worktracker/internal/tracker"
)

// env is everything a command needs to run against the configured store.
type env struct {
	store   *storage.Store
	in      *prompt.Prompter
	out     *render.Renderer
	tracker *tracker.Tracker
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		if dir, err = storage.BaseDir(); err != nil {
			return nil, err
		}
	}
	store, err := storage.Open(dir)
	if err != nil {
		return nil, err
	}

	out := render.New(cmd.OutOrStdout(), cfg.Color)
	in := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
	return &env{
		store:   store,
		in:      in,
		out:     out,
		tracker: tracker.New(store, in, out, tracker.WithErrOut(cmd.ErrOrStderr())),
	}, nil
}

// mustEnv opens the environment or exits with status 2.
func mustEnv(cmd *cobra.Command) *env {
	e, err := openEnv(cmd)
	if err != nil {
		fatal(err)
	}
	return e
}

// fatal reports a storage or configuration failure and exits with status 2.
func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}
