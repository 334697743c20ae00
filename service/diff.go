package service

import (
	"time"

	"github.com/octavianissuemonitoring/parser-law-sub001/data"
)

// articleKey is the best-effort identity of an article across re-imports:
// its number plus the label of its hierarchy context. A reused number
// under a renamed chapter therefore diffs as removed+added; the source has
// no stronger identity to offer.
type articleKey struct {
	Number       string
	ContextLabel string
}

func keyOf(a *data.Article) articleKey {
	return articleKey{Number: a.Number, ContextLabel: a.Context.Label()}
}

// DiffArticles computes the article-level diff between the stored set and
// the freshly parsed set. Entries for the new set come first in parse
// order, followed by removals in stored order. Articles whose key matches
// but whose text differs are modified and flagged for relabeling.
func DiffArticles(stored, parsed []*data.Article) []data.ArticleChange {
	storedByKey := make(map[articleKey]*data.Article, len(stored))
	for _, a := range stored {
		storedByKey[keyOf(a)] = a
	}
	parsedKeys := make(map[articleKey]bool, len(parsed))

	changes := make([]data.ArticleChange, 0, len(parsed))
	for _, a := range parsed {
		key := keyOf(a)
		parsedKeys[key] = true
		change := data.ArticleChange{
			Number:       a.Number,
			ContextLabel: key.ContextLabel,
		}
		old, ok := storedByKey[key]
		switch {
		case !ok:
			change.Kind = data.ChangeAdded
		case old.Text != a.Text:
			change.Kind = data.ChangeModified
			change.NeedsRelabel = true
		default:
			change.Kind = data.ChangeUnchanged
		}
		changes = append(changes, change)
	}

	for _, a := range stored {
		if !parsedKeys[keyOf(a)] {
			changes = append(changes, data.ArticleChange{
				Number:       a.Number,
				ContextLabel: a.Context.Label(),
				Kind:         data.ChangeRemoved,
			})
		}
	}

	return changes
}

// hasMutations reports whether the diff contains anything besides
// unchanged entries.
func hasMutations(changes []data.ArticleChange) bool {
	for _, c := range changes {
		if c.Kind != data.ChangeUnchanged {
			return true
		}
	}
	return false
}

// metadataEqual compares two metadata snapshots field-for-field. A
// metadata-only difference (corrected title, issuer, gazette reference)
// still forces an update so the correction is not dropped.
func metadataEqual(a, b data.ActMetadata) bool {
	return a.ActType == b.ActType &&
		a.Year == b.Year &&
		a.Title == b.Title &&
		a.SourceURL == b.SourceURL &&
		stringPtrEqual(a.Number, b.Number) &&
		stringPtrEqual(a.Issuer, b.Issuer) &&
		stringPtrEqual(a.GazetteNumber, b.GazetteNumber) &&
		intPtrEqual(a.GazetteYear, b.GazetteYear) &&
		timePtrEqual(a.IssueDate, b.IssueDate) &&
		timePtrEqual(a.GazetteDate, b.GazetteDate)
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// annexesEqual compares the stored and parsed annex sets field-for-field
// in sequence order. Annexes are replaced wholesale, so equality only
// gates whether an update is needed at all.
func annexesEqual(stored, parsed []*data.Annex) bool {
	if len(stored) != len(parsed) {
		return false
	}
	for i := range stored {
		if stored[i].Number != parsed[i].Number ||
			stored[i].Title != parsed[i].Title ||
			stored[i].Text != parsed[i].Text {
			return false
		}
	}
	return true
}
