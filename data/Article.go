package data

import (
	"strings"
	"time"
)

// AIStatus tracks downstream labeling progress for an article or annex.
type AIStatus string

const (
	AIStatusPending    AIStatus = "pending"
	AIStatusProcessing AIStatus = "processing"
	AIStatusCompleted  AIStatus = "completed"
	AIStatusError      AIStatus = "error"
)

// HierarchyLevel is one entry of a hierarchy context: an optional ordinal
// ("II", "1") and the free-text heading that followed it.
type HierarchyLevel struct {
	Ordinal string `json:"ordinal"`
	Label   string `json:"label"`
}

// HierarchyContext is the titlu/capitol/secțiune/subsecțiune path that was
// active when a record was emitted. It is a snapshot by value: later parser
// state changes never retroactively alter emitted records.
type HierarchyContext struct {
	Titlu       *HierarchyLevel `json:"titlu"`
	Capitol     *HierarchyLevel `json:"capitol"`
	Sectiune    *HierarchyLevel `json:"sectiune"`
	Subsectiune *HierarchyLevel `json:"subsectiune"`
}

// IsEmpty reports whether no hierarchy level is set (a flat act).
func (c HierarchyContext) IsEmpty() bool {
	return c.Titlu == nil && c.Capitol == nil && c.Sectiune == nil && c.Subsectiune == nil
}

// Label renders the context as a stable path string, e.g.
// "titlul I Dispoziții generale/capitolul II/secțiunea 1". Used together
// with the article number as the best-effort diff key across re-imports.
func (c HierarchyContext) Label() string {
	var parts []string
	appendLevel := func(name string, l *HierarchyLevel) {
		if l == nil {
			return
		}
		s := name
		if l.Ordinal != "" {
			s += " " + l.Ordinal
		}
		if l.Label != "" {
			s += " " + l.Label
		}
		parts = append(parts, s)
	}
	appendLevel("titlul", c.Titlu)
	appendLevel("capitolul", c.Capitol)
	appendLevel("secțiunea", c.Sectiune)
	appendLevel("subsecțiunea", c.Subsectiune)
	return strings.Join(parts, "/")
}

// Article is one article of an act. Number is a label, not necessarily
// numeric ("5", "IV", "unic"). Seq is the monotonic position within the act
// used for stable ordering and diffing.
type Article struct {
	InternalId   int              `json:"-"`
	Id           string           `json:"id"`
	ActId        int              `json:"-"`
	Number       string           `json:"number"`
	Context      HierarchyContext `json:"context"`
	Text         string           `json:"text"`
	Seq          int              `json:"seq"`
	AIStatus     AIStatus         `json:"aiStatus"`
	NeedsRelabel bool             `json:"needsRelabel"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// Annex is a numbered appendix to an act, versioned independently of
// articles. (act, Number) is unique.
type Annex struct {
	InternalId   int       `json:"-"`
	Id           string    `json:"id"`
	ActId        int       `json:"-"`
	Number       string    `json:"number"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	Seq          int       `json:"seq"`
	AIStatus     AIStatus  `json:"aiStatus"`
	NeedsRelabel bool      `json:"needsRelabel"`
	CreatedAt    time.Time `json:"createdAt"`
}
