package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/repolens/internal/analyzers/changelog"
	"github.com/Sumatoshi-tech/repolens/internal/config"
	"github.com/Sumatoshi-tech/repolens/internal/history"
	"github.com/Sumatoshi-tech/repolens/pkg/gitlib"
)

// changelogFileMode is the permission mode for written changelog files.
const changelogFileMode = 0o644

// ChangelogCommand holds the configuration for the changelog command.
type ChangelogCommand struct {
	fromTag string
	toTag   string
	output  string
}

// NewChangelogCommand creates the changelog command. It renders the commits
// reachable from --to-tag but not from --from-tag as a categorized Markdown
// changelog.
func NewChangelogCommand() *cobra.Command {
	cc := &ChangelogCommand{}

	cobraCmd := &cobra.Command{
		Use:   "changelog",
		Short: "Generate a categorized changelog between two tags",
		Long: `Generate a Markdown changelog for the commit range between two tags.

Commits reachable from --to-tag but not from --from-tag are classified into
New Features, Bug Fixes and Other Changes by message prefix. The Statistics
section reports the aggregate tree diff between the two tags.`,
		RunE: cc.run,
	}

	cobraCmd.Flags().StringVar(&cc.fromTag, "from-tag", "", "Starting tag (excluded from the range)")
	cobraCmd.Flags().StringVar(&cc.toTag, "to-tag", "", "Ending tag (included in the range)")
	cobraCmd.Flags().StringVarP(&cc.output, "output", "o", "", "Output file (default: stdout)")

	_ = cobraCmd.MarkFlagRequired("from-tag")
	_ = cobraCmd.MarkFlagRequired("to-tag")

	return cobraCmd
}

// run executes the changelog generation.
func (cc *ChangelogCommand) run(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	repoPath, _ := cmd.Flags().GetString("path")

	path, err := expandPath(repoPath)
	if err != nil {
		return err
	}

	repo, openErr := gitlib.OpenRepository(path)
	if openErr != nil {
		color.Red("'%s' is not a git repository - check the path", repoPath)

		return nil
	}
	defer repo.Free()

	from, to, rangeErr := resolveRange(repo, cc.fromTag, cc.toTag)
	if rangeErr != nil {
		return rangeErr
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Generating changelog from '%s' to '%s'...\n",
		color.GreenString(cc.fromTag), color.GreenString(cc.toTag))

	doc, buildErr := buildChangelog(repo, cfg, cc.fromTag, cc.toTag, from, to)
	if buildErr != nil {
		return buildErr
	}

	return cc.emit(cmd, doc.Render())
}

// resolveRange validates and resolves both tags, reporting a distinct error
// per tag for the absent and the unresolvable case.
func resolveRange(repo *gitlib.Repository, fromTag, toTag string) (from, to gitlib.Hash, err error) {
	from, err = repo.ResolveTag(fromTag)
	if err != nil {
		return gitlib.Hash{}, gitlib.Hash{}, fmt.Errorf("from tag: %w", err)
	}

	to, err = repo.ResolveTag(toTag)
	if err != nil {
		return gitlib.Hash{}, gitlib.Hash{}, fmt.Errorf("to tag: %w", err)
	}

	return from, to, nil
}

// buildChangelog walks the tag range, classifies the commits and computes
// the aggregate range statistics.
func buildChangelog(
	repo *gitlib.Repository, cfg *config.Config, fromTag, toTag string, from, to gitlib.Hash,
) (*changelog.Document, error) {
	walker := history.NewWalker(repo)

	records, walkErr := walker.Walk(to, &from)
	if walkErr != nil {
		return nil, walkErr
	}

	engine := history.NewStatEngine(repo)

	stats, statsErr := engine.RangeStats(from, to)
	if statsErr != nil {
		return nil, statsErr
	}

	rules := changelog.RulesFromPrefixes(cfg.Changelog.FeaturePrefixes, cfg.Changelog.FixPrefixes)
	classifier := changelog.NewClassifier(rules, cfg.Changelog.DateFormat)

	return &changelog.Document{
		FromTag: fromTag,
		ToTag:   toTag,
		Stats:   stats,
		Buckets: classifier.Split(records),
	}, nil
}

// emit writes the rendered changelog to the output file or stdout.
func (cc *ChangelogCommand) emit(cmd *cobra.Command, rendered string) error {
	if cc.output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), rendered)

		return nil
	}

	writeErr := os.WriteFile(cc.output, []byte(rendered), changelogFileMode)
	if writeErr != nil {
		return fmt.Errorf("write changelog: %w", writeErr)
	}

	color.Green("Changelog saved to '%s'", cc.output)

	return nil
}
