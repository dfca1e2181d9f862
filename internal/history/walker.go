package history

import (
	"errors"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/Sumatoshi-tech/repolens/pkg/gitlib"
)

// ErrRevisionWalk is returned when the commit graph cannot be constructed
// or walked (corrupt history, dangling reference).
var ErrRevisionWalk = errors.New("revision walk failed")

// Walker enumerates commits reachable from a starting point. It never
// terminates the process; all failures surface as errors to the caller.
type Walker struct {
	repo *gitlib.Repository
}

// NewWalker creates a walker over the given repository.
func NewWalker(repo *gitlib.Repository) *Walker {
	return &Walker{repo: repo}
}

// WalkHead returns the full history reachable from HEAD.
func (w *Walker) WalkHead() ([]Record, error) {
	head, err := w.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRevisionWalk, err)
	}

	return w.Walk(head, nil)
}

// Walk returns the commits reachable from the given start point in
// reverse-chronological order. When exclude is set, every commit reachable
// from it (itself included) is omitted, which yields the "commits in `from`
// that are not in `exclude`" range.
func (w *Walker) Walk(from gitlib.Hash, exclude *gitlib.Hash) ([]Record, error) {
	walk, err := w.repo.Walk()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRevisionWalk, err)
	}
	defer walk.Free()

	walk.Sorting(git2go.SortTime)

	pushErr := walk.Push(from)
	if pushErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrRevisionWalk, pushErr)
	}

	if exclude != nil {
		hideErr := walk.Hide(*exclude)
		if hideErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrRevisionWalk, hideErr)
		}
	}

	var records []Record

	iterErr := walk.Iterate(func(commit *gitlib.Commit) bool {
		records = append(records, recordFromCommit(commit))
		commit.Free()

		return true
	})
	if iterErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrRevisionWalk, iterErr)
	}

	return records, nil
}
