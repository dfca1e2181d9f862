// Package commands implements the repolens CLI commands.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/repolens/internal/analyzers/authors"
	"github.com/Sumatoshi-tech/repolens/internal/config"
	"github.com/Sumatoshi-tech/repolens/internal/history"
	"github.com/Sumatoshi-tech/repolens/pkg/gitlib"
)

// RootCommand holds the configuration for the default stats run.
type RootCommand struct {
	path       string
	format     string
	configPath string
}

// NewRootCommand creates the root command. Invoked without a subcommand it
// aggregates per-author contribution statistics for the full history of the
// repository at --path.
func NewRootCommand() *cobra.Command {
	rc := &RootCommand{}

	cobraCmd := &cobra.Command{
		Use:   "repolens",
		Short: "Per-author contribution statistics and tag-range changelogs",
		Long: `repolens inspects a git repository's commit history.

Without a subcommand it prints a per-author contribution table for the whole
history. The changelog subcommand generates a categorized Markdown changelog
between two tags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          rc.run,
	}

	cobraCmd.PersistentFlags().StringVarP(&rc.path, "path", "p", ".", "Path to the git repository")
	cobraCmd.PersistentFlags().StringVar(&rc.configPath, "config", "", "Config file path (default: .repolens.yaml in CWD or $HOME)")
	cobraCmd.Flags().StringVarP(&rc.format, "format", "f", "", "Output format (table, yaml, plot)")

	return cobraCmd
}

// run executes the author statistics analysis.
func (rc *RootCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return err
	}

	format := rc.format
	if format == "" {
		format = cfg.Stats.Format
	}

	path, err := expandPath(rc.path)
	if err != nil {
		return err
	}

	repo, openErr := gitlib.OpenRepository(path)
	if openErr != nil {
		// Reported to the user without failing the process; no traversal is attempted.
		color.Red("'%s' is not a git repository - check the path", rc.path)

		return nil
	}
	defer repo.Free()

	empty, emptyErr := repo.IsEmpty()
	if emptyErr != nil {
		return emptyErr
	}

	if empty {
		color.Yellow("Repository is empty. No commits to analyze.")

		return nil
	}

	if format == config.FormatTable {
		color.Green("Analyzing repository: %s", filepath.Base(path))
	}

	aggregate, aggErr := aggregateHistory(repo)
	if aggErr != nil {
		return aggErr
	}

	return renderStats(aggregate.Rows(), format, cmd.OutOrStdout())
}

// aggregateHistory walks the full history from HEAD and accumulates diff
// stats per author. Stats are computed synchronously per commit; the
// aggregate is owned by this call alone.
func aggregateHistory(repo *gitlib.Repository) (*authors.Aggregate, error) {
	walker := history.NewWalker(repo)

	records, err := walker.WalkHead()
	if err != nil {
		return nil, err
	}

	engine := history.NewStatEngine(repo)
	aggregate := authors.NewAggregate()

	for _, rec := range records {
		aggregate.Add(rec, engine.CommitStats(rec.Hash))
	}

	return aggregate, nil
}

// renderStats writes the rows in the requested format.
func renderStats(rows []authors.Row, format string, writer io.Writer) error {
	switch format {
	case config.FormatTable:
		authors.RenderTable(rows, writer)

		return nil
	case config.FormatYAML:
		return authors.RenderYAML(rows, writer)
	case config.FormatPlot:
		return authors.RenderPlot(rows, writer)
	default:
		return fmt.Errorf("%w: %s (use table, yaml, or plot)", config.ErrInvalidStatsFormat, format)
	}
}

// expandPath expands a leading ~ to the user home directory.
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return strings.Replace(path, "~", home, 1), nil
}
