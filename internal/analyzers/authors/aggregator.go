// Package authors aggregates per-author contribution statistics from a
// commit sequence and renders them as a table, YAML, or an HTML chart.
package authors

import (
	"sort"

	"github.com/Sumatoshi-tech/repolens/internal/history"
)

// UnknownAuthor is the sentinel name used when a commit carries no author name.
const UnknownAuthor = "Unknown"

const percentFactor = 100

// Stats accumulates contribution counters for a single author. Counters only
// grow while a traversal is consumed; percentages are derived at render time
// and never stored.
type Stats struct {
	Commits      int
	LinesAdded   int
	LinesDeleted int
}

// Aggregate accumulates per-author statistics. It is owned by a single
// traversal and remembers the order in which authors were first seen, which
// breaks presentation ties deterministically.
type Aggregate struct {
	byName map[string]*Stats
	order  []string
}

// NewAggregate creates an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{byName: make(map[string]*Stats)}
}

// Add attributes one commit's diff stats entirely to the commit's author.
// Authors are keyed by display name; commits without a name go to the
// Unknown sentinel.
func (a *Aggregate) Add(rec history.Record, diffStat history.Stats) {
	name := rec.Author.Name
	if name == "" {
		name = UnknownAuthor
	}

	stats, seen := a.byName[name]
	if !seen {
		stats = &Stats{}
		a.byName[name] = stats
		a.order = append(a.order, name)
	}

	stats.Commits++
	stats.LinesAdded += diffStat.Insertions
	stats.LinesDeleted += diffStat.Deletions
}

// Len returns the number of distinct authors seen so far.
func (a *Aggregate) Len() int {
	return len(a.order)
}

// TotalContributions returns the sum of added and deleted lines across all
// authors.
func (a *Aggregate) TotalContributions() int {
	total := 0
	for _, stats := range a.byName {
		total += stats.LinesAdded + stats.LinesDeleted
	}

	return total
}

// Row is a finalized per-author presentation row.
type Row struct {
	Author       string  `yaml:"author"`
	Commits      int     `yaml:"commits"`
	LinesAdded   int     `yaml:"lines_added"`
	LinesDeleted int     `yaml:"lines_deleted"`
	Contribution float64 `yaml:"contribution_pct"`
}

// Rows returns presentation rows ordered by descending commit count, ties
// broken by first-seen order (stable sort). Contribution is the author's
// share of all added plus deleted lines; it reports zero when the total is
// zero.
func (a *Aggregate) Rows() []Row {
	total := a.TotalContributions()

	rows := make([]Row, 0, len(a.order))

	for _, name := range a.order {
		stats := a.byName[name]

		contribution := 0.0
		if total > 0 {
			contribution = float64(stats.LinesAdded+stats.LinesDeleted) / float64(total) * percentFactor
		}

		rows = append(rows, Row{
			Author:       name,
			Commits:      stats.Commits,
			LinesAdded:   stats.LinesAdded,
			LinesDeleted: stats.LinesDeleted,
			Contribution: contribution,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Commits > rows[j].Commits
	})

	return rows
}
