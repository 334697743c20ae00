package service

import (
	"testing"
	"time"

	"github.com/octavianissuemonitoring/parser-law-sub001/data"
)

func article(number, capitol, text string) *data.Article {
	a := &data.Article{Number: number, Text: text, AIStatus: data.AIStatusPending}
	if capitol != "" {
		a.Context = data.HierarchyContext{
			Capitol: &data.HierarchyLevel{Ordinal: capitol},
		}
	}
	return a
}

func TestDiffArticlesModified(t *testing.T) {
	stored := []*data.Article{
		article("1", "I", "Textul original al primului articol."),
		article("2", "I", "Textul original al celui de al doilea articol."),
		article("3", "II", "Textul original al celui de al treilea articol."),
	}
	parsed := []*data.Article{
		article("1", "I", "Textul original al primului articol."),
		article("2", "I", "Textul modificat al celui de al doilea articol."),
		article("3", "II", "Textul original al celui de al treilea articol."),
	}

	changes := DiffArticles(stored, parsed)
	if len(changes) != 3 {
		t.Fatalf("changes = %d, want 3", len(changes))
	}

	wantKinds := []data.ChangeKind{data.ChangeUnchanged, data.ChangeModified, data.ChangeUnchanged}
	for i, want := range wantKinds {
		if changes[i].Kind != want {
			t.Errorf("changes[%d].Kind = %q, want %q", i, changes[i].Kind, want)
		}
	}
	if !changes[1].NeedsRelabel {
		t.Error("modified article not flagged for relabeling")
	}
	if changes[0].NeedsRelabel || changes[2].NeedsRelabel {
		t.Error("unchanged articles flagged for relabeling")
	}
	if !hasMutations(changes) {
		t.Error("hasMutations = false with one modification")
	}
}

func TestDiffArticlesIdempotent(t *testing.T) {
	stored := []*data.Article{
		article("1", "I", "Primul articol."),
		article("2", "I", "Al doilea articol."),
	}
	parsed := []*data.Article{
		article("1", "I", "Primul articol."),
		article("2", "I", "Al doilea articol."),
	}

	changes := DiffArticles(stored, parsed)
	for i, c := range changes {
		if c.Kind != data.ChangeUnchanged {
			t.Errorf("changes[%d].Kind = %q, want unchanged", i, c.Kind)
		}
	}
	if hasMutations(changes) {
		t.Error("hasMutations = true for an identical re-import")
	}
}

func TestDiffArticlesAddedAndRemoved(t *testing.T) {
	stored := []*data.Article{
		article("1", "I", "Primul articol."),
		article("2", "I", "Articol care dispare."),
	}
	parsed := []*data.Article{
		article("1", "I", "Primul articol."),
		article("3", "I", "Articol nou introdus."),
	}

	changes := DiffArticles(stored, parsed)
	if len(changes) != 3 {
		t.Fatalf("changes = %d, want 3", len(changes))
	}
	// Parse order first, removals after.
	if changes[0].Kind != data.ChangeUnchanged || changes[0].Number != "1" {
		t.Errorf("changes[0] = %+v", changes[0])
	}
	if changes[1].Kind != data.ChangeAdded || changes[1].Number != "3" {
		t.Errorf("changes[1] = %+v", changes[1])
	}
	if changes[2].Kind != data.ChangeRemoved || changes[2].Number != "2" {
		t.Errorf("changes[2] = %+v", changes[2])
	}
}

func TestDiffArticlesContextChangeIsRemoveAndAdd(t *testing.T) {
	// Same number under a different chapter has a different identity.
	stored := []*data.Article{article("5", "I", "Textul articolului cinci.")}
	parsed := []*data.Article{article("5", "II", "Textul articolului cinci.")}

	changes := DiffArticles(stored, parsed)
	if len(changes) != 2 {
		t.Fatalf("changes = %d, want 2", len(changes))
	}
	if changes[0].Kind != data.ChangeAdded {
		t.Errorf("changes[0].Kind = %q, want added", changes[0].Kind)
	}
	if changes[1].Kind != data.ChangeRemoved {
		t.Errorf("changes[1].Kind = %q, want removed", changes[1].Kind)
	}
	if changes[0].ContextLabel == changes[1].ContextLabel {
		t.Errorf("context labels should differ, both %q", changes[0].ContextLabel)
	}
}

func TestApplyChangeFlags(t *testing.T) {
	stored := []*data.Article{
		article("1", "I", "Primul articol."),
		article("2", "I", "Al doilea articol, versiunea veche."),
	}
	stored[0].AIStatus = data.AIStatusCompleted

	parsed := []*data.Article{
		article("1", "I", "Primul articol."),
		article("2", "I", "Al doilea articol, versiunea nouă."),
		article("3", "I", "Al treilea articol, nou."),
	}

	changes := DiffArticles(stored, parsed)
	applyChangeFlags(changes, stored, parsed)

	// Unchanged article keeps its completed status so it is not re-queued.
	if parsed[0].AIStatus != data.AIStatusCompleted {
		t.Errorf("unchanged article status = %q, want completed", parsed[0].AIStatus)
	}
	if parsed[0].NeedsRelabel {
		t.Error("unchanged article flagged for relabeling")
	}
	// Modified article goes back to pending with the relabel flag.
	if parsed[1].AIStatus != data.AIStatusPending || !parsed[1].NeedsRelabel {
		t.Errorf("modified article = %q relabel=%v, want pending relabel=true",
			parsed[1].AIStatus, parsed[1].NeedsRelabel)
	}
	// Added article stays at its parse defaults.
	if parsed[2].AIStatus != data.AIStatusPending || parsed[2].NeedsRelabel {
		t.Errorf("added article = %q relabel=%v, want pending relabel=false",
			parsed[2].AIStatus, parsed[2].NeedsRelabel)
	}
}

func TestMetadataEqual(t *testing.T) {
	base := func() data.ActMetadata {
		number := "123"
		issuer := "PARLAMENTUL ROMÂNIEI"
		date := time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC)
		return data.ActMetadata{
			ActType:   data.ActTypeLaw,
			Number:    &number,
			Year:      2024,
			IssueDate: &date,
			Title:     "privind transparența decizională",
			Issuer:    &issuer,
			SourceURL: "https://portal.example/act/123",
		}
	}

	if !metadataEqual(base(), base()) {
		t.Error("identical metadata reported unequal")
	}

	cases := []struct {
		name   string
		mutate func(*data.ActMetadata)
	}{
		{"corrected title", func(m *data.ActMetadata) { m.Title = "titlul corectat" }},
		{"issuer cleared", func(m *data.ActMetadata) { m.Issuer = nil }},
		{"different number", func(m *data.ActMetadata) {
			number := "124"
			m.Number = &number
		}},
		{"gazette reference added", func(m *data.ActMetadata) {
			gazette := "1002"
			m.GazetteNumber = &gazette
		}},
		{"issue date changed", func(m *data.ActMetadata) {
			date := time.Date(2024, time.October, 16, 0, 0, 0, 0, time.UTC)
			m.IssueDate = &date
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			changed := base()
			c.mutate(&changed)
			if metadataEqual(base(), changed) {
				t.Error("changed metadata reported equal")
			}
		})
	}
}

func TestAnnexesEqual(t *testing.T) {
	annex := func(number, title, text string) *data.Annex {
		return &data.Annex{Number: number, Title: title, Text: text}
	}

	cases := []struct {
		name   string
		stored []*data.Annex
		parsed []*data.Annex
		want   bool
	}{
		{
			name:   "both empty",
			want:   true,
		},
		{
			name:   "identical",
			stored: []*data.Annex{annex("1", "Lista", "Conținut")},
			parsed: []*data.Annex{annex("1", "Lista", "Conținut")},
			want:   true,
		},
		{
			name:   "text differs",
			stored: []*data.Annex{annex("1", "Lista", "Conținut vechi")},
			parsed: []*data.Annex{annex("1", "Lista", "Conținut nou")},
			want:   false,
		},
		{
			name:   "annex added",
			stored: []*data.Annex{annex("1", "Lista", "Conținut")},
			parsed: []*data.Annex{annex("1", "Lista", "Conținut"), annex("2", "", "Tabel")},
			want:   false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := annexesEqual(c.stored, c.parsed); got != c.want {
				t.Errorf("annexesEqual = %v, want %v", got, c.want)
			}
		})
	}
}
