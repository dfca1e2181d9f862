package gitlib

import (
	"errors"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// Tag resolution errors. ErrTagNotFound means the reference does not exist;
// ErrTagUnresolvable means it exists but cannot be peeled to a commit
// (a tag pointing at a tree or blob, or a broken annotated tag).
var (
	ErrTagNotFound     = errors.New("tag not found")
	ErrTagUnresolvable = errors.New("tag cannot be resolved to a commit")
)

// tagRefPrefix is the fully qualified reference namespace for tags.
const tagRefPrefix = "refs/tags/"

// TagExists reports whether refs/tags/<name> exists, independent of whether
// it resolves to a commit.
func (r *Repository) TagExists(name string) bool {
	obj, err := r.repo.RevparseSingle(tagRefPrefix + name)
	if err != nil {
		return false
	}

	obj.Free()

	return true
}

// ResolveTag resolves a tag name to its target commit hash. Annotated tags
// are peeled to the commit they reference; lightweight tags are used directly.
func (r *Repository) ResolveTag(name string) (Hash, error) {
	obj, err := r.repo.RevparseSingle(tagRefPrefix + name)
	if err != nil {
		return Hash{}, fmt.Errorf("%w: %s", ErrTagNotFound, name)
	}
	defer obj.Free()

	switch obj.Type() {
	case git2go.ObjectCommit:
		return HashFromOid(obj.Id()), nil
	case git2go.ObjectTag:
		peeled, peelErr := obj.Peel(git2go.ObjectCommit)
		if peelErr != nil {
			return Hash{}, fmt.Errorf("%w: %s", ErrTagUnresolvable, name)
		}
		defer peeled.Free()

		return HashFromOid(peeled.Id()), nil
	default:
		return Hash{}, fmt.Errorf("%w: %s", ErrTagUnresolvable, name)
	}
}
