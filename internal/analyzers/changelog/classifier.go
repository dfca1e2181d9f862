// Package changelog classifies commits into release-note buckets and
// renders the result as Markdown.
package changelog

import (
	"strings"

	"github.com/Sumatoshi-tech/repolens/internal/history"
)

// Bucket identifies the changelog section a commit belongs to.
type Bucket int

// The three buckets, in rule precedence order.
const (
	BucketFeature Bucket = iota
	BucketFix
	BucketOther
)

// Rule maps a case-sensitive message prefix to a bucket.
type Rule struct {
	Prefix string
	Bucket Bucket
}

// DefaultRules is the ordered default rule table; the first matching prefix
// wins. "Merged PR" and "task" cover the Azure DevOps merge-message
// convention alongside conventional-commit prefixes.
var DefaultRules = []Rule{
	{Prefix: "feat", Bucket: BucketFeature},
	{Prefix: "feature", Bucket: BucketFeature},
	{Prefix: "Merged PR", Bucket: BucketFeature},
	{Prefix: "task", Bucket: BucketFeature},
	{Prefix: "fix", Bucket: BucketFix},
	{Prefix: "bug", Bucket: BucketFix},
}

// RulesFromPrefixes builds an ordered rule table from configured prefix
// lists, keeping feature rules ahead of fix rules.
func RulesFromPrefixes(featurePrefixes, fixPrefixes []string) []Rule {
	rules := make([]Rule, 0, len(featurePrefixes)+len(fixPrefixes))

	for _, prefix := range featurePrefixes {
		rules = append(rules, Rule{Prefix: prefix, Bucket: BucketFeature})
	}

	for _, prefix := range fixPrefixes {
		rules = append(rules, Rule{Prefix: prefix, Bucket: BucketFix})
	}

	return rules
}

// Classifier buckets commits by matching the first line of the message
// against an ordered rule list. Classification is a pure function of the
// message's leading characters.
type Classifier struct {
	rules      []Rule
	dateFormat string
}

// NewClassifier creates a classifier with the given rules and entry date
// format. Nil rules fall back to DefaultRules; an empty format falls back
// to DefaultDateFormat.
func NewClassifier(rules []Rule, dateFormat string) *Classifier {
	if rules == nil {
		rules = DefaultRules
	}

	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}

	return &Classifier{rules: rules, dateFormat: dateFormat}
}

// Classify returns the bucket for a commit message. Only the first line is
// considered; unmatched messages land in BucketOther.
func (c *Classifier) Classify(message string) Bucket {
	title := firstLine(message)

	for _, rule := range c.rules {
		if strings.HasPrefix(title, rule.Prefix) {
			return rule.Bucket
		}
	}

	return BucketOther
}

// Split classifies a commit sequence into buckets, preserving traversal
// order within each bucket.
func (c *Classifier) Split(records []history.Record) Buckets {
	var buckets Buckets

	for _, rec := range records {
		entry := c.entryFromRecord(rec)

		switch c.Classify(rec.Message) {
		case BucketFeature:
			buckets.Features = append(buckets.Features, entry)
		case BucketFix:
			buckets.Fixes = append(buckets.Fixes, entry)
		case BucketOther:
			buckets.Others = append(buckets.Others, entry)
		}
	}

	return buckets
}

func (c *Classifier) entryFromRecord(rec history.Record) Entry {
	author := rec.Author.Name
	if author == "" {
		author = unknownAuthor
	}

	return Entry{
		ShortHash: rec.Hash.Short(),
		Author:    author,
		Date:      rec.Author.When.UTC().Format(c.dateFormat),
		Title:     firstLine(rec.Message),
	}
}

// firstLine returns the title line of a possibly multi-line message.
func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")

	return strings.TrimRight(line, "\r")
}
