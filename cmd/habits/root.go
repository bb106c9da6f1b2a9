package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytakahashi/habit-tracker/internal/client"
	"github.com/ytakahashi/habit-tracker/internal/config"
	"github.com/ytakahashi/habit-tracker/internal/logging"
	"github.com/ytakahashi/habit-tracker/internal/tracker"
)

var errNotSaved = errors.New("habit not saved")

// cli carries what the subcommands share once the root command has run.
type cli struct {
	apiURL  string
	verbose bool

	logger  *zap.Logger
	tracker *tracker.Tracker
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:          "habits",
		Short:        "Track daily habits against a habit service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.tracker != nil {
				c.tracker.Close()
			}
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.apiURL, "api", "", "habit service URL (default $HABITS_API_URL or "+config.DefaultAPIURL+")")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		c.listCmd(),
		c.addCmd(),
		c.editCmd(),
		c.rmCmd(),
		c.toggleCmd(),
		c.categoriesCmd(),
	)
	return rootCmd
}

// setup loads configuration, builds the tracker and performs its initial load.
func (c *cli) setup(cmd *cobra.Command) error {
	config.LoadDotEnv()
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if c.apiURL == "" {
		c.apiURL = cfg.APIURL
	}

	c.logger, err = logging.New(cfg.Debug || c.verbose)
	if err != nil {
		return err
	}
	c.logger.Debug("using habit service", zap.String("url", c.apiURL))

	api := client.New(c.apiURL, &http.Client{Timeout: 30 * time.Second})
	c.tracker = tracker.New(api, logging.NewReporter(c.logger), cfg.Categories)
	c.tracker.Mount(ctx(cmd))
	return nil
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

func (c *cli) listCmd() *cobra.Command {
	var search, category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.tracker.SetSearch(search)
			c.tracker.SetCategory(category)
			return c.render(cmd)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive text to match in names")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only show this category")
	return cmd
}

func (c *cli) addCmd() *cobra.Command {
	var name, category string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a habit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.tracker.BeginCreate()
			c.tracker.SetDraftName(name)
			c.tracker.SetDraftCategory(category)
			return c.submit(cmd)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "habit name")
	cmd.Flags().StringVarP(&category, "category", "c", "", "habit category")
	return cmd
}

func (c *cli) editCmd() *cobra.Command {
	var name, category string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename a habit or change its category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, ok := c.tracker.Find(args[0])
			if !ok {
				return fmt.Errorf("habit %s not found", args[0])
			}
			c.tracker.BeginEdit(h)
			if cmd.Flags().Changed("name") {
				c.tracker.SetDraftName(name)
			}
			if cmd.Flags().Changed("category") {
				c.tracker.SetDraftCategory(category)
			}
			return c.submit(cmd)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	return cmd
}

func (c *cli) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a habit",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.tracker.Delete(ctx(cmd), args[0])
			return c.render(cmd)
		},
	}
}

func (c *cli) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Flip a habit between done and not done",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.tracker.Toggle(ctx(cmd), args[0])
			return c.render(cmd)
		},
	}
}

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the categories offered by the form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, category := range c.tracker.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), category)
			}
			return nil
		},
	}
}

// submit saves the draft. The form stays open when nothing was saved.
func (c *cli) submit(cmd *cobra.Command) error {
	c.tracker.Submit(ctx(cmd))
	if c.tracker.ModalOpen() {
		if !c.tracker.Draft().Ready() {
			return fmt.Errorf("%w: name and category are required", errNotSaved)
		}
		return errNotSaved
	}
	return c.render(cmd)
}

func (c *cli) render(cmd *cobra.Command) error {
	renderHabits(cmd.OutOrStdout(), c.tracker.Filtered())
	return nil
}
