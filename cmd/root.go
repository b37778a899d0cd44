// Package cmd handles command parsing and execution.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Scalingo/sclng-top-languages/config"
	"github.com/Scalingo/sclng-top-languages/logger"
	"github.com/Scalingo/sclng-top-languages/model"
	"github.com/Scalingo/sclng-top-languages/service"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newLanguagesService is replaced in tests to avoid reaching the real platforms
var newLanguagesService = buildLanguagesService

type options struct {
	verbose    bool
	outputJSON bool
	cfg        *config.Config
}

// NewRootCommand creates the command printing the most used languages of a profile
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "top-languages <profile-url>",
		Short:         "Five most used languages of a GitHub or GitLab profile",
		Long:          `Fetch the public repositories of a GitHub or GitLab profile and print the five most used languages by share of bytes.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("unable to load configuration: %w", err)
			}

			logger.Setup(*cfg, opts.verbose)
			opts.cfg = cfg

			// tokens are checked before the url, both are required whatever the platform
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "" {
				return model.ErrMissingArgument
			}

			languagesService, err := newLanguagesService(cmd.Context(), *opts.cfg)
			if err != nil {
				return err
			}

			report, err := languagesService.TopLanguages(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if opts.outputJSON {
				return PrintReportJSON(cmd.OutOrStdout(), report)
			}

			PrintReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVar(&opts.outputJSON, "json", false, "print the languages as json")

	rootCmd.AddCommand(newServeCommand(opts), newVersionCommand())

	return rootCmd
}

// Execute runs the root command and exits with status 1 on any error
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}

func buildLanguagesService(ctx context.Context, cfg config.Config) (service.LanguagesService, error) {
	limiter := service.NewRequestLimiter(cfg)

	githubClient, err := service.NewGithubClient(ctx, cfg.Github)
	if err != nil {
		return nil, fmt.Errorf("unable to setup github client: %w", err)
	}

	gitlabClient, err := service.NewGitlabClient(cfg.Gitlab, limiter)
	if err != nil {
		return nil, fmt.Errorf("unable to setup gitlab client: %w", err)
	}

	log.WithFields(log.Fields{
		"maxParallelTasks":  cfg.Tasks.MaxParallelTasksAllowed,
		"requestsPerSecond": cfg.Tasks.RequestsPerSecond,
	}).Debug("platforms clients ready")

	return service.NewLanguagesService(
		service.NewGithubService(cfg, githubClient, limiter),
		service.NewGitlabService(cfg, gitlabClient),
	), nil
}
