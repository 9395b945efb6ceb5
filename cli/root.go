// Package cli wires the commands of the ruddit binary.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/mascanho/ruddit/ai"
	"github.com/mascanho/ruddit/config"
	"github.com/mascanho/ruddit/data"
	"github.com/mascanho/ruddit/data/repos"
	"github.com/mascanho/ruddit/sources"
	"github.com/mascanho/ruddit/ui"
)

// app holds the lazily constructed pieces shared by all commands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sqlx.DB
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	var configPath string
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "ruddit",
		Short:         "Fetch Reddit posts, mine them for sales leads",
		Long:          "ruddit fetches posts and comments from Reddit into a local database,\nasks a generative model to classify them into leads, and exports the\nresults to spreadsheets.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := cfg.Level()
			if debug {
				level = slog.LevelDebug
			}
			opts := slog.HandlerOptions{Level: level}
			a.logger = slog.New(slog.NewJSONHandler(os.Stderr, &opts))
			slog.SetDefault(a.logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.db != nil {
				if err := a.db.Close(); err != nil {
					a.logger.Error("failed to close database", "error", err)
				}
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation fetches the configured default subreddit.
			return a.fetch(cmd.Context(), a.cfg.Defaults.Subreddit, a.cfg.Defaults.Sort)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newFetchCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newCommentsCmd(a))
	rootCmd.AddCommand(newAskCmd(a))
	rootCmd.AddCommand(newLeadsCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newClearCmd(a))
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newOpenDBCmd())

	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) openDB() (*sqlx.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	path, err := config.DatabasePath()
	if err != nil {
		return nil, err
	}
	db, err := data.Open(path)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) postRepo() (*repos.PostRepo, error) {
	db, err := a.openDB()
	if err != nil {
		return nil, err
	}
	return repos.NewPostRepo(db), nil
}

func (a *app) commentRepo() (*repos.CommentRepo, error) {
	db, err := a.openDB()
	if err != nil {
		return nil, err
	}
	return repos.NewCommentRepo(db), nil
}

// redditClient builds an authenticated Reddit client.
func (a *app) redditClient(ctx context.Context) (*sources.RedditClient, error) {
	httpClient, err := sources.HTTPClient(a.logger, a.cfg.Reddit.ProxyURL)
	if err != nil {
		return nil, err
	}

	opts := []sources.RedditOption{}
	if len(a.cfg.Leads.Languages) > 0 {
		opts = append(opts, sources.WithLanguageTagger(tagger()))
	}

	client := sources.NewRedditClient(
		a.logger,
		httpClient,
		a.cfg.Reddit.ClientID,
		a.cfg.Reddit.ClientSecret,
		a.cfg.Reddit.UserAgent,
		opts...,
	)
	if err := client.Authenticate(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func (a *app) extractor(ctx context.Context) (*ai.Extractor, error) {
	gen, err := ai.NewGeminiGenerator(ctx, a.cfg.Gemini.APIKey, a.cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	return ai.NewExtractor(gen, a.logger,
		ai.WithSpinner(ui.NewSpinner(os.Stdout)),
		ai.WithMaxAttempts(a.cfg.Gemini.MaxAttempts),
	), nil
}

func (a *app) aiService(ctx context.Context) (*ai.Service, error) {
	extractor, err := a.extractor(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := a.postRepo()
	if err != nil {
		return nil, err
	}
	comments, err := a.commentRepo()
	if err != nil {
		return nil, err
	}
	return ai.NewService(extractor, posts, comments, a.logger), nil
}
