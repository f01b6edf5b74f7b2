// ABOUTME: Cobra command tree: the interactive root command and config subcommands
// ABOUTME: Resolves flags and the config file into TUI options and dependencies

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"accordion-pager/config"
	"accordion-pager/tui"
)

// rootOptions holds the parsed command-line flags
type rootOptions struct {
	configPath string
	debug      bool
	pages      int
	noWatch    bool
	noMouse    bool
}

// resolvedConfigPath returns the --config value or the default lookup
func (o *rootOptions) resolvedConfigPath() string {
	if o.configPath != "" {
		return o.configPath
	}

	return config.GetConfigPath()
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accordion-pager",
		Short: "Paged scroll views under a collapsible header",
		Long: `A terminal demo of horizontally paged content whose vertical scrolling
first folds away a shared header before the content itself moves.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default: ./accordion-pager.toml or ~/.config/accordion-pager/config.toml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false,
		"enable debug logging to "+debugLogFile)
	cmd.Flags().IntVar(&opts.pages, "pages", 0, "number of pages (overrides config)")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "do not reload the config file when it changes")
	cmd.Flags().BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse wheel and click handling")

	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

func runInteractive(cmd *cobra.Command, opts *rootOptions) error {
	if opts.debug {
		if err := SetupDebugLog(debugLogFile); err != nil {
			return err
		}
	}

	tuiOpts, deps, err := buildDependencies(cmd, opts)
	if err != nil {
		return err
	}

	return tui.Run(tuiOpts, deps)
}

// buildDependencies loads the effective config and wires the TUI collaborators
func buildDependencies(cmd *cobra.Command, opts *rootOptions) (tui.Options, tui.Dependencies, error) {
	path := opts.resolvedConfigPath()

	cfg, err := config.LoadConfig(path)
	if err != nil {
		// Unreadable or invalid files fall back to defaults
		debugf("[CONFIG] %v", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using defaults)\n", err)
	}

	if cmd.Flags().Changed("pages") {
		cfg.Pages.Count = opts.pages
		if err := cfg.Validate(); err != nil {
			return tui.Options{}, tui.Dependencies{}, fmt.Errorf("--pages: %w", err)
		}
	}

	deps := tui.Dependencies{
		Config: cfg,
		Store:  fileStore{},
		Debugf: debugf,
	}

	if !opts.noWatch {
		w, err := newConfigWatcher(path)
		if err != nil {
			debugf("[WATCHER] %v", err)
		} else {
			deps.Watcher = w
		}
	}

	debugf("[CONFIG] Using %s (pages=%d, policy=%s)", path, cfg.Pages.Count, cfg.Header.TransitionPolicy)

	return tui.Options{ConfigPath: path, NoMouse: opts.noMouse}, deps, nil
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.resolvedConfigPath()

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", path, err)
			}

			if err := config.SaveConfig(path, config.DefaultConfig()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)

			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.resolvedConfigPath()

			cfg, err := config.LoadConfig(path)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (showing defaults)\n", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", path)

			if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg); err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}

			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), opts.resolvedConfigPath())
		},
	}

	cmd.AddCommand(initCmd, showCmd, pathCmd)

	return cmd
}
