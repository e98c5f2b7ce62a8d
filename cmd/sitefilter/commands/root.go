package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tfkr-ae/sitefilter"
	"github.com/tfkr-ae/sitefilter/browser"
)

var (
	home     string
	backend  string
	tabURL   string
	devtools string
	appCtx   *sitefilter.Filter
)

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context) error {
	return execute(ctx, newRootCmd())
}

// execute runs root and closes the filter built for it, also when the command failed.
func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if appCtx != nil {
		if closeErr := appCtx.Close(); err == nil {
			err = closeErr
		}
		appCtx = nil
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sitefilter",
		Short:        "Search the web without results from the sites you excluded",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserConfigDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, "sitefilter")
			}

			options := []func(*sitefilter.Filter) error{
				sitefilter.WithConfigDir(home),
				sitefilter.WithLogFile(),
				sitefilter.WithDatabase(filepath.Join(home, "sitefilter.db")),
				overrideBackend(backend),
				sitefilter.WithConfiguredStore(),
				sitefilter.WithDevTools(devtools),
			}
			if tabURL != "" {
				options = append(options, sitefilter.WithResolver(browser.Static{URL: tabURL}))
			}

			filter, err := sitefilter.New(options...)
			if err != nil {
				return err
			}
			appCtx = filter
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default $XDG_CONFIG_HOME/sitefilter)")
	root.PersistentFlags().StringVar(&backend, "store", "", "store backend: sqlite, redis or file (default from config)")
	root.PersistentFlags().StringVar(&tabURL, "url", "", "use this URL as the active tab instead of asking the browser")
	root.PersistentFlags().StringVar(&devtools, "devtools", "", "Chrome remote debugging address (default from config)")

	root.AddCommand(
		addCmd(),
		removeCmd(),
		listCmd(),
		searchCmd(),
		currentCmd(),
		historyCmd(),
		exportCmd(),
		importCmd(),
		serveCmd(),
		chromePathCmd(),
		configCmd(),
	)
	return root
}

// overrideBackend replaces store.backend for this run only.
func overrideBackend(name string) func(*sitefilter.Filter) error {
	return func(filter *sitefilter.Filter) error {
		if name == "" {
			return nil
		}
		if filter.Config == nil {
			return errors.New("store override needs a config dir")
		}
		switch name {
		case sitefilter.BackendSQLite, sitefilter.BackendRedis, sitefilter.BackendFile:
			filter.Config.Store.Backend = name
			return nil
		default:
			return fmt.Errorf("unknown store backend %q", name)
		}
	}
}
