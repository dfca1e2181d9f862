package history_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/repolens/internal/history"
	"github.com/Sumatoshi-tech/repolens/pkg/gitlib"
)

// testRepo builds real commit graphs for walker and stat engine tests.
type testRepo struct {
	t      *testing.T
	path   string
	native *git2go.Repository
	clock  time.Time
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()

	repo, err := git2go.InitRepository(dir, false)
	require.NoError(t, err)

	t.Cleanup(repo.Free)

	return &testRepo{
		t:      t,
		path:   dir,
		native: repo,
		clock:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (tr *testRepo) createFile(name, content string) {
	tr.t.Helper()

	err := os.WriteFile(filepath.Join(tr.path, name), []byte(content), 0o644)
	require.NoError(tr.t, err)
}

// stageTree stages the working directory and returns the resulting tree.
func (tr *testRepo) stageTree() *git2go.Tree {
	tr.t.Helper()

	index, err := tr.native.Index()
	require.NoError(tr.t, err)

	defer index.Free()

	err = index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil)
	require.NoError(tr.t, err)

	err = index.Write()
	require.NoError(tr.t, err)

	treeID, err := index.WriteTree()
	require.NoError(tr.t, err)

	tree, err := tr.native.LookupTree(treeID)
	require.NoError(tr.t, err)

	return tree
}

// commitAs creates a commit on HEAD authored by the given name.
func (tr *testRepo) commitAs(name, message string) gitlib.Hash {
	tr.t.Helper()

	var parents []gitlib.Hash

	head, err := tr.native.Head()
	if err == nil {
		parents = append(parents, gitlib.HashFromOid(head.Target()))
		head.Free()
	}

	return tr.commitWith(name, message, "HEAD", parents)
}

func (tr *testRepo) commit(message string) gitlib.Hash {
	tr.t.Helper()

	return tr.commitAs("Test User", message)
}

// commitWith creates a commit with explicit parents. An empty refname leaves
// all references untouched, which allows building side branches and merges.
func (tr *testRepo) commitWith(name, message, refname string, parentHashes []gitlib.Hash) gitlib.Hash {
	tr.t.Helper()

	tree := tr.stageTree()
	defer tree.Free()

	tr.clock = tr.clock.Add(time.Minute)

	sig := &git2go.Signature{
		Name:  name,
		Email: "test@example.com",
		When:  tr.clock,
	}

	parents := make([]*git2go.Commit, len(parentHashes))

	for i, hash := range parentHashes {
		parent, lookupErr := tr.native.LookupCommit(hash.ToOid())
		require.NoError(tr.t, lookupErr)

		parents[i] = parent
	}

	oid, err := tr.native.CreateCommit(refname, sig, sig, message, tree, parents...)
	require.NoError(tr.t, err)

	for _, parent := range parents {
		parent.Free()
	}

	return gitlib.HashFromOid(oid)
}

func (tr *testRepo) open() *gitlib.Repository {
	tr.t.Helper()

	repo, err := gitlib.OpenRepository(tr.path)
	require.NoError(tr.t, err)

	tr.t.Cleanup(repo.Free)

	return repo
}

// Walker tests.

func TestWalkHeadReverseChronological(t *testing.T) {
	tr := newTestRepo(t)

	tr.createFile("a.txt", "a\n")
	tr.commit("first")
	tr.createFile("b.txt", "b\n")
	tr.commit("second")
	tr.createFile("c.txt", "c\n")
	tr.commit("third")

	walker := history.NewWalker(tr.open())

	records, err := walker.WalkHead()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "third", records[0].Summary)
	assert.Equal(t, "second", records[1].Summary)
	assert.Equal(t, "first", records[2].Summary)
}

func TestWalkRecordFields(t *testing.T) {
	tr := newTestRepo(t)

	tr.createFile("a.txt", "a\n")
	firstHash := tr.commit("first")
	tr.createFile("b.txt", "b\n")
	secondHash := tr.commitAs("Alice", "second: details\n\nbody text\n")

	walker := history.NewWalker(tr.open())

	records, err := walker.WalkHead()
	require.NoError(t, err)

	require.Len(t, records, 2)

	rec := records[0]
	assert.Equal(t, secondHash, rec.Hash)
	assert.Equal(t, "Alice", rec.Author.Name)
	assert.Equal(t, "second: details", rec.Summary)
	assert.Contains(t, rec.Message, "body text")
	assert.Equal(t, []gitlib.Hash{firstHash}, rec.ParentHashes)
	assert.False(t, rec.IsRoot())

	assert.True(t, records[1].IsRoot())
}

func TestWalkExcludesBoundary(t *testing.T) {
	tr := newTestRepo(t)

	tr.createFile("a.txt", "a\n")
	firstHash := tr.commit("first")
	tr.createFile("b.txt", "b\n")
	secondHash := tr.commit("second")

	walker := history.NewWalker(tr.open())

	records, err := walker.Walk(secondHash, &firstHash)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, secondHash, records[0].Hash)
}

func TestWalkVisitsMergeGraphOnce(t *testing.T) {
	tr := newTestRepo(t)

	tr.createFile("a.txt", "a\n")
	rootHash := tr.commit("root")

	tr.createFile("b.txt", "b\n")
	leftHash := tr.commit("left")

	sideHash := tr.commitWith("Test User", "side", "", []gitlib.Hash{rootHash})

	tr.createFile("c.txt", "c\n")
	mergeHash := tr.commitWith("Test User", "merge", "HEAD", []gitlib.Hash{leftHash, sideHash})

	walker := history.NewWalker(tr.open())

	records, err := walker.Walk(mergeHash, nil)
	require.NoError(t, err)

	// The root is reachable through both parents but must appear once.
	require.Len(t, records, 4)

	seen := make(map[gitlib.Hash]int)
	for _, rec := range records {
		seen[rec.Hash]++
	}

	for hash, count := range seen {
		assert.Equal(t, 1, count, "commit %s visited more than once", hash)
	}
}

func TestWalkUnknownStart(t *testing.T) {
	tr := newTestRepo(t)

	tr.createFile("a.txt", "a\n")
	tr.commit("first")

	walker := history.NewWalker(tr.open())

	_, err := walker.Walk(gitlib.NewHash("1234567890123456789012345678901234567890"), nil)
	require.ErrorIs(t, err, history.ErrRevisionWalk)
}

// StatEngine tests.

func TestCommitStatsRootAgainstEmptyTree(t *testing.T) {
	tr := newTestRepo(t)

	tr.createFile("a.txt", "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n")
	rootHash := tr.commit("feat: init")

	engine := history.NewStatEngine(tr.open())

	stats := engine.CommitStats(rootHash)

	assert.Equal(t, 1, stats.FilesChanged)
	assert.Equal(t, 10, stats.Insertions)
	assert.Equal(t, 0, stats.Deletions)
}

func TestCommitStatsAgainstFirstParent(t *testing.T) {
	tr := newTestRepo(t)

	tr.createFile("a.txt", "1\n2\n3\n")
	tr.commit("first")

	tr.createFile("a.txt", "1\n2\nthree\n4\n")
	secondHash := tr.commit("second")

	engine := history.NewStatEngine(tr.open())

	stats := engine.CommitStats(secondHash)

	assert.Equal(t, 1, stats.FilesChanged)
	assert.Equal(t, 2, stats.Insertions)
	assert.Equal(t, 1, stats.Deletions)
}

func TestCommitStatsMergeUsesFirstParentOnly(t *testing.T) {
	tr := newTestRepo(t)

	tr.createFile("a.txt", "1\n2\n3\n")
	rootHash := tr.commit("root")

	sideHash := tr.commitWith("Test User", "side", "", []gitlib.Hash{rootHash})

	tr.createFile("b.txt", "x\n")
	leftHash := tr.commit("left")

	tr.createFile("c.txt", "y\ny\n")
	mergeHash := tr.commitWith("Test User", "merge", "HEAD", []gitlib.Hash{leftHash, sideHash})

	engine := history.NewStatEngine(tr.open())

	// Only c.txt separates the merge from its first parent; diffing against
	// the second parent would also count b.txt.
	stats := engine.CommitStats(mergeHash)

	assert.Equal(t, 1, stats.FilesChanged)
	assert.Equal(t, 2, stats.Insertions)
	assert.Equal(t, 0, stats.Deletions)
}

func TestCommitStatsUnknownCommitDegradesToZero(t *testing.T) {
	tr := newTestRepo(t)

	tr.createFile("a.txt", "a\n")
	tr.commit("first")

	engine := history.NewStatEngine(tr.open())

	stats := engine.CommitStats(gitlib.NewHash("1234567890123456789012345678901234567890"))

	assert.Equal(t, history.Stats{}, stats)
}

func TestRangeStatsSingleTreeDiff(t *testing.T) {
	tr := newTestRepo(t)

	tr.createFile("a.txt", "1\n2\n3\n")
	firstHash := tr.commit("first")

	tr.createFile("a.txt", "1\n2\nthree\n")
	tr.commit("second")

	tr.createFile("a.txt", "1\n2\n3\n")
	thirdHash := tr.commit("third")

	engine := history.NewStatEngine(tr.open())

	// The intermediate edit is invisible to the aggregate tree diff.
	stats, err := engine.RangeStats(firstHash, thirdHash)
	require.NoError(t, err)

	assert.Equal(t, history.Stats{}, stats)
}

func TestRangeStatsUnknownCommit(t *testing.T) {
	tr := newTestRepo(t)

	tr.createFile("a.txt", "a\n")
	firstHash := tr.commit("first")

	engine := history.NewStatEngine(tr.open())

	_, err := engine.RangeStats(firstHash, gitlib.NewHash("1234567890123456789012345678901234567890"))
	require.Error(t, err)
}
