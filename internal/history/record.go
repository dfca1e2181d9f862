// Package history enumerates a repository's commit graph and computes
// per-commit diff statistics.
package history

import (
	"github.com/Sumatoshi-tech/repolens/pkg/gitlib"
)

// Record is an immutable snapshot of a commit's metadata, detached from
// libgit2 object lifetimes so it can outlive the walk that produced it.
type Record struct {
	Hash         gitlib.Hash
	Author       gitlib.Signature
	Message      string
	Summary      string
	ParentHashes []gitlib.Hash
}

// IsRoot reports whether the commit has no parents.
func (r Record) IsRoot() bool {
	return len(r.ParentHashes) == 0
}

// recordFromCommit copies commit metadata into a Record.
func recordFromCommit(commit *gitlib.Commit) Record {
	numParents := commit.NumParents()

	parents := make([]gitlib.Hash, numParents)
	for i := range numParents {
		parents[i] = commit.ParentHash(i)
	}

	return Record{
		Hash:         commit.Hash(),
		Author:       commit.Author(),
		Message:      commit.Message(),
		Summary:      commit.Summary(),
		ParentHashes: parents,
	}
}
