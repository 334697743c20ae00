package data

import "time"

// ChangeKind classifies one article's fate across a re-import.
type ChangeKind string

const (
	ChangeAdded     ChangeKind = "added"
	ChangeModified  ChangeKind = "modified"
	ChangeRemoved   ChangeKind = "removed"
	ChangeUnchanged ChangeKind = "unchanged"
)

// ArticleChange is one entry of an import diff, keyed by the article number
// plus its hierarchy context label.
type ArticleChange struct {
	Number       string     `json:"number"`
	ContextLabel string     `json:"contextLabel"`
	Kind         ChangeKind `json:"kind"`
	NeedsRelabel bool       `json:"needsRelabel"`
}

// ChangeRecord captures what one import changed on an existing act.
// Append-only: written exclusively by the import merge inside its
// transaction and never mutated afterward.
type ChangeRecord struct {
	InternalId int             `json:"-"`
	Id         string          `json:"id"`
	ActId      int             `json:"-"`
	OldVersion int             `json:"oldVersion"`
	NewVersion int             `json:"newVersion"`
	Changes    []ArticleChange `json:"changes"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Counts tallies the change kinds in the record.
func (r *ChangeRecord) Counts() (added, modified, removed, unchanged int) {
	for _, c := range r.Changes {
		switch c.Kind {
		case ChangeAdded:
			added++
		case ChangeModified:
			modified++
		case ChangeRemoved:
			removed++
		case ChangeUnchanged:
			unchanged++
		}
	}
	return
}
