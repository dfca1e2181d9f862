package changelog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/repolens/internal/analyzers/changelog"
	"github.com/Sumatoshi-tech/repolens/internal/history"
	"github.com/Sumatoshi-tech/repolens/pkg/gitlib"
)

func record(hash, author, message string, when time.Time) history.Record {
	return history.Record{
		Hash:    gitlib.NewHash(hash),
		Author:  gitlib.Signature{Name: author, Email: "x@example.com", When: when},
		Message: message,
	}
}

func TestClassifyDefaultRules(t *testing.T) {
	classifier := changelog.NewClassifier(nil, "")

	tests := []struct {
		name    string
		message string
		want    changelog.Bucket
	}{
		{name: "feat prefix", message: "feat: add login", want: changelog.BucketFeature},
		{name: "feature prefix", message: "feature: new dashboard", want: changelog.BucketFeature},
		{name: "merged pr", message: "Merged PR 123: add search", want: changelog.BucketFeature},
		{name: "task prefix", message: "task 42: wire up metrics", want: changelog.BucketFeature},
		{name: "fix prefix", message: "fix: null pointer", want: changelog.BucketFix},
		{name: "bug prefix", message: "bugfix for crash", want: changelog.BucketFix},
		{name: "unmatched", message: "chore: bump deps", want: changelog.BucketOther},
		{name: "docs", message: "docs: update readme", want: changelog.BucketOther},
		{name: "empty message", message: "", want: changelog.BucketOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.message))
		})
	}
}

func TestClassifyIsCaseSensitive(t *testing.T) {
	classifier := changelog.NewClassifier(nil, "")

	assert.Equal(t, changelog.BucketOther, classifier.Classify("Feat: add login"))
	assert.Equal(t, changelog.BucketOther, classifier.Classify("FIX: crash"))
	assert.Equal(t, changelog.BucketOther, classifier.Classify("merged pr 7"))
}

func TestClassifyBareWordsWithoutSeparator(t *testing.T) {
	classifier := changelog.NewClassifier(nil, "")

	// Prefix matching does not require a colon or space after the word.
	assert.Equal(t, changelog.BucketFeature, classifier.Classify("features galore"))
	assert.Equal(t, changelog.BucketFix, classifier.Classify("fixes the build"))
}

func TestClassifyFirstLineOnly(t *testing.T) {
	classifier := changelog.NewClassifier(nil, "")

	// A prefix in the body must not influence classification.
	assert.Equal(t, changelog.BucketOther, classifier.Classify("chore: tidy\n\nfix: mentioned in body"))
	assert.Equal(t, changelog.BucketFeature, classifier.Classify("feat: title\n\nchore: body"))
}

func TestClassifyFirstMatchWins(t *testing.T) {
	rules := []changelog.Rule{
		{Prefix: "f", Bucket: changelog.BucketFix},
		{Prefix: "feat", Bucket: changelog.BucketFeature},
	}

	classifier := changelog.NewClassifier(rules, "")

	assert.Equal(t, changelog.BucketFix, classifier.Classify("feat: shadowed by shorter rule"))
}

func TestRulesFromPrefixes(t *testing.T) {
	rules := changelog.RulesFromPrefixes([]string{"add", "new"}, []string{"hotfix"})

	classifier := changelog.NewClassifier(rules, "")

	assert.Equal(t, changelog.BucketFeature, classifier.Classify("add: pagination"))
	assert.Equal(t, changelog.BucketFeature, classifier.Classify("new: onboarding"))
	assert.Equal(t, changelog.BucketFix, classifier.Classify("hotfix: regression"))
	assert.Equal(t, changelog.BucketOther, classifier.Classify("feat: not in custom rules"))
}

func TestSplitPreservesOrderAndBuildsEntries(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []history.Record{
		record("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "Alice", "feat: second feature\n\nbody", when),
		record("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "Bob", "fix: the bug", when.Add(-time.Hour)),
		record("cccccccccccccccccccccccccccccccccccccccc", "Carol", "feat: first feature", when.Add(-2*time.Hour)),
		record("dddddddddddddddddddddddddddddddddddddddd", "", "chore: cleanup", when.Add(-3*time.Hour)),
	}

	classifier := changelog.NewClassifier(nil, "")
	buckets := classifier.Split(records)

	require.Len(t, buckets.Features, 2)
	require.Len(t, buckets.Fixes, 1)
	require.Len(t, buckets.Others, 1)
	assert.Equal(t, 4, buckets.Total())

	assert.Equal(t, "feat: second feature", buckets.Features[0].Title)
	assert.Equal(t, "feat: first feature", buckets.Features[1].Title)

	fix := buckets.Fixes[0]
	assert.Equal(t, "bbbbbbb", fix.ShortHash)
	assert.Equal(t, "Bob", fix.Author)
	assert.Equal(t, "01 Mar 2024 11:00:00", fix.Date)
	assert.Equal(t, "fix: the bug", fix.Title)

	// Missing author names fall back to the sentinel.
	assert.Equal(t, "Unknown", buckets.Others[0].Author)
}

func TestSplitRendersDateInUTC(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*60*60)
	when := time.Date(2024, 3, 1, 15, 0, 0, 0, zone)

	records := []history.Record{
		record("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "Alice", "feat: zoned", when),
	}

	classifier := changelog.NewClassifier(nil, "")
	buckets := classifier.Split(records)

	require.Len(t, buckets.Features, 1)
	assert.Equal(t, "01 Mar 2024 12:00:00", buckets.Features[0].Date)
}
