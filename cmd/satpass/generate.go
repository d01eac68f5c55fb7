package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nao1215/satpass/internal/config"
	"github.com/nao1215/satpass/internal/log"
	"github.com/nao1215/satpass/internal/model"
	"github.com/nao1215/satpass/internal/n2yo"
	"github.com/nao1215/satpass/internal/pipeline"
	"github.com/nao1215/satpass/internal/report"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch pass predictions and write the report",
		Long: `Generate fetches radio pass predictions from the N2YO API for every
configured satellite, merges and time-sorts them, renders the report, and
writes it to the configured output path.

Satellites whose fetch fails are logged and skipped; the report is still
generated from the remaining ones. A failure to write the output file is
also only logged. Either way the command exits 0, so a scheduler does not
retry a run whose data is already spent.

Examples:
  # Generate the report using .satpass from the current or home directory
  satpass generate

  # Use a custom configuration file
  satpass generate -c /etc/satpass.yaml

  # Write the report somewhere else, or to stdout
  satpass generate -o /var/www/html/passes.html
  satpass generate -o -

  # Render Markdown or JSON instead of HTML
  satpass generate --markdown
  satpass generate --json`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .satpass in current or home directory)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to this path instead of the configured one ('-' for stdout)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	// Build config from the config file and flags
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Validate already proved the zone name resolves
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}

	// Set up file-backed structured logging
	logger, logCloser, err := log.NewFileLogger(cfg.LogFile, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logCloser.Close() //nolint:errcheck // Best effort cleanup
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runGenerate(ctx, cfg, location, logger)
}

// buildConfig loads the configuration file and applies flag overrides.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly named a config file, its absence is an
	// error. Unlike a scanner, satpass cannot do anything useful
	// without one, so the implicit search failing is an error too.
	explicitConfigPath := configPath != ""
	foundPath := config.FindConfigFile(configPath)
	if foundPath == "" {
		if explicitConfigPath {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return nil, errors.New("no configuration file found (run 'satpass init' to create one)")
	}

	cfg, err := config.LoadConfigFile(foundPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", foundPath, err)
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	if output != "" {
		cfg.Output = output
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// reportFormat maps the format flags to a report format.
func reportFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.MarkdownReport:
		return report.FormatMarkdown
	case cfg.JSONReport:
		return report.FormatJSON
	default:
		return report.FormatHTML
	}
}

// runGenerate executes the report generation pipeline.
// An error returned here is unexpected (tier three); it has already been
// logged with full detail and flips the exit status via Execute.
func runGenerate(ctx context.Context, cfg *config.Config, location *time.Location, logger *slog.Logger) error {
	logger.Info("satellite pass tracking started",
		"satellites", len(cfg.Satellites),
		"days", cfg.Days,
		"minElevation", cfg.MinElevation,
		"timezone", cfg.Timezone,
		"output", cfg.Output,
	)

	client := n2yo.NewClient(cfg.APIKey,
		n2yo.Observer{
			Latitude:  cfg.Station.Latitude,
			Longitude: cfg.Station.Longitude,
			Altitude:  cfg.Station.Elevation,
		},
		n2yo.WithDays(cfg.Days),
		n2yo.WithMinElevation(cfg.MinElevation),
	)

	p := pipeline.GeneratePipeline(client, cfg.Satellites, reportFormat(cfg), location, cfg.Output,
		pipeline.WithLogger(logger))

	rep := model.NewPassReport(model.GroundStation{
		Latitude:  cfg.Station.Latitude,
		Longitude: cfg.Station.Longitude,
		Elevation: cfg.Station.Elevation,
	})

	if err := p.Execute(ctx, rep); err != nil {
		logger.Error("satellite pass tracking failed", "error", err)
		return err
	}

	logger.Info("satellite pass tracking completed",
		"records", len(rep.Records),
		"skipped", len(rep.Skipped),
	)
	return nil
}
