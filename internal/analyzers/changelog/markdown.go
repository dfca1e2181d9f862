package changelog

import (
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/repolens/internal/history"
)

// DefaultDateFormat renders entry dates as a human-readable UTC timestamp.
const DefaultDateFormat = "02 Jan 2006 15:04:05"

// unknownAuthor is the fallback for commits without an author name.
const unknownAuthor = "Unknown"

// Entry is one rendered changelog line.
type Entry struct {
	ShortHash string
	Author    string
	Date      string
	Title     string
}

// Buckets groups classified entries. Order within each bucket follows the
// traversal that produced it.
type Buckets struct {
	Features []Entry
	Fixes    []Entry
	Others   []Entry
}

// Total returns the number of entries across all buckets.
func (b Buckets) Total() int {
	return len(b.Features) + len(b.Fixes) + len(b.Others)
}

// Document is a complete changelog for one tag range. Stats holds the
// aggregate tree-to-tree diff between the two tags, not a per-commit sum.
type Document struct {
	FromTag string
	ToTag   string
	Stats   history.Stats
	Buckets Buckets
}

// Render produces the Markdown changelog. The shape is fixed: a title, a
// Statistics section, then one section per non-empty bucket. Empty buckets
// are omitted entirely.
func (d *Document) Render() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Changelog from %s to %s\n\n", d.FromTag, d.ToTag)

	sb.WriteString("## Statistics\n\n")
	fmt.Fprintf(&sb, "- Files changed: %d\n", d.Stats.FilesChanged)
	fmt.Fprintf(&sb, "- Lines added: %d\n", d.Stats.Insertions)
	fmt.Fprintf(&sb, "- Lines deleted: %d\n", d.Stats.Deletions)
	fmt.Fprintf(&sb, "- Total commits: %d\n", d.Buckets.Total())

	writeSection(&sb, "New Features", d.Buckets.Features)
	writeSection(&sb, "Bug Fixes", d.Buckets.Fixes)
	writeSection(&sb, "Other Changes", d.Buckets.Others)

	return sb.String()
}

func writeSection(sb *strings.Builder, heading string, entries []Entry) {
	if len(entries) == 0 {
		return
	}

	fmt.Fprintf(sb, "\n## %s\n\n", heading)

	for _, entry := range entries {
		fmt.Fprintf(sb, "- %s (%s)\n  _by %s on %s_\n", entry.Title, entry.ShortHash, entry.Author, entry.Date)
	}
}
