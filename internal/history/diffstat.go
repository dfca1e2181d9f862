package history

import (
	"fmt"

	"github.com/Sumatoshi-tech/repolens/pkg/gitlib"
)

// Stats holds aggregate diff counts between two tree snapshots.
type Stats struct {
	FilesChanged int `yaml:"files_changed"`
	Insertions   int `yaml:"insertions"`
	Deletions    int `yaml:"deletions"`
}

// StatEngine computes diff statistics for commits of a repository.
type StatEngine struct {
	repo *gitlib.Repository
}

// NewStatEngine creates a stat engine over the given repository.
func NewStatEngine(repo *gitlib.Repository) *StatEngine {
	return &StatEngine{repo: repo}
}

// CommitStats returns the diff stats of a commit against its first parent,
// or against the empty tree for root commits. Merge commits are diffed
// against the first parent only. Any failure degrades to zeroed stats so a
// single malformed commit cannot block aggregation of the rest of history.
func (e *StatEngine) CommitStats(hash gitlib.Hash) Stats {
	commit, err := e.repo.LookupCommit(hash)
	if err != nil {
		return Stats{}
	}
	defer commit.Free()

	newTree, treeErr := commit.Tree()
	if treeErr != nil {
		return Stats{}
	}
	defer newTree.Free()

	var oldTree *gitlib.Tree

	if commit.NumParents() > 0 {
		parent, parentErr := commit.Parent(0)
		if parentErr != nil {
			return Stats{}
		}
		defer parent.Free()

		oldTree, treeErr = parent.Tree()
		if treeErr != nil {
			return Stats{}
		}
		defer oldTree.Free()
	}

	stats, statsErr := e.treeStats(oldTree, newTree)
	if statsErr != nil {
		return Stats{}
	}

	return stats
}

// RangeStats returns one tree-to-tree diff between two commits. This is the
// aggregate for a whole tag range, not a per-commit sum.
func (e *StatEngine) RangeStats(from, to gitlib.Hash) (Stats, error) {
	fromTree, err := e.commitTree(from)
	if err != nil {
		return Stats{}, err
	}
	defer fromTree.Free()

	toTree, err := e.commitTree(to)
	if err != nil {
		return Stats{}, err
	}
	defer toTree.Free()

	return e.treeStats(fromTree, toTree)
}

func (e *StatEngine) commitTree(hash gitlib.Hash) (*gitlib.Tree, error) {
	commit, err := e.repo.LookupCommit(hash)
	if err != nil {
		return nil, err
	}
	defer commit.Free()

	tree, treeErr := commit.Tree()
	if treeErr != nil {
		return nil, treeErr
	}

	return tree, nil
}

func (e *StatEngine) treeStats(oldTree, newTree *gitlib.Tree) (Stats, error) {
	diff, err := e.repo.DiffTreeToTree(oldTree, newTree)
	if err != nil {
		return Stats{}, fmt.Errorf("diff stats: %w", err)
	}
	defer diff.Free()

	diffStats, statsErr := diff.Stats()
	if statsErr != nil {
		return Stats{}, fmt.Errorf("diff stats: %w", statsErr)
	}
	defer diffStats.Free()

	return Stats{
		FilesChanged: diffStats.FilesChanged(),
		Insertions:   diffStats.Insertions(),
		Deletions:    diffStats.Deletions(),
	}, nil
}
