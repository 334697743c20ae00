package parser

import (
	"strings"
	"testing"
)

func TestParseStructureHierarchy(t *testing.T) {
	blocks := []Block{
		{Role: RoleCapitol, Text: "CAPITOLUL I Dispoziții generale"},
		{Role: RoleSectiune, Text: "SECȚIUNEA 1 Domeniul de aplicare"},
		{Role: RoleArticle, Text: "Articolul 1"},
		{Role: RoleArticleBody, Text: "Prezenta lege stabilește cadrul general al transparenței decizionale."},
		{Role: RoleArticle, Text: "Articolul 2"},
		{Role: RoleArticleBody, Text: "Autoritățile publice aplică dispozițiile prezentei legi."},
		{Role: RoleSectiune, Text: "SECȚIUNEA a 2-a Definiții"},
		{Role: RoleArticle, Text: "Articolul 3"},
		{Role: RoleArticleBody, Text: "În sensul prezentei legi, termenii de mai jos se definesc astfel."},
	}

	articles, annexes, warnings := ParseStructure(blocks)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(annexes) != 0 {
		t.Fatalf("annexes = %d, want 0", len(annexes))
	}
	if len(articles) != 3 {
		t.Fatalf("articles = %d, want 3", len(articles))
	}

	for i, a := range articles {
		if a.Seq != i {
			t.Errorf("articles[%d].Seq = %d, want %d", i, a.Seq, i)
		}
		if a.Context.Capitol == nil || a.Context.Capitol.Ordinal != "I" {
			t.Errorf("articles[%d] capitol = %+v, want ordinal I", i, a.Context.Capitol)
		}
	}
	if articles[0].Number != "1" || articles[1].Number != "2" || articles[2].Number != "3" {
		t.Errorf("numbers = %s %s %s, want 1 2 3",
			articles[0].Number, articles[1].Number, articles[2].Number)
	}
	if got := articles[0].Context.Capitol.Label; got != "Dispoziții generale" {
		t.Errorf("capitol label = %q", got)
	}
	if s := articles[0].Context.Sectiune; s == nil || s.Ordinal != "1" {
		t.Errorf("articles[0] sectiune = %+v, want ordinal 1", s)
	}
	if s := articles[1].Context.Sectiune; s == nil || s.Ordinal != "1" {
		t.Errorf("articles[1] sectiune = %+v, want ordinal 1", s)
	}
	// The section change must not retroactively alter articles 1 and 2.
	if s := articles[2].Context.Sectiune; s == nil || s.Ordinal != "2" || s.Label != "Definiții" {
		t.Errorf("articles[2] sectiune = %+v, want ordinal 2 label Definiții", s)
	}
}

func TestParseStructureClearsLowerLevels(t *testing.T) {
	blocks := []Block{
		{Role: RoleTitlu, Text: "TITLUL I Partea generală"},
		{Role: RoleCapitol, Text: "CAPITOLUL I"},
		{Role: RoleSectiune, Text: "SECȚIUNEA 1"},
		{Role: RoleArticle, Text: "Articolul 1"},
		{Role: RoleArticleBody, Text: "Text suficient de lung pentru a fi păstrat."},
		{Role: RoleCapitol, Text: "CAPITOLUL II"},
		{Role: RoleArticle, Text: "Articolul 2"},
		{Role: RoleArticleBody, Text: "Alt text suficient de lung pentru a fi păstrat."},
	}

	articles, _, _ := ParseStructure(blocks)
	if len(articles) != 2 {
		t.Fatalf("articles = %d, want 2", len(articles))
	}

	first := articles[0].Context
	if first.Titlu == nil || first.Titlu.Ordinal != "I" {
		t.Errorf("first titlu = %+v, want ordinal I", first.Titlu)
	}
	if first.Sectiune == nil || first.Sectiune.Ordinal != "1" {
		t.Errorf("first sectiune = %+v, want ordinal 1", first.Sectiune)
	}

	second := articles[1].Context
	if second.Titlu == nil || second.Titlu.Ordinal != "I" {
		t.Errorf("second titlu = %+v, want ordinal I kept", second.Titlu)
	}
	if second.Capitol == nil || second.Capitol.Ordinal != "II" {
		t.Errorf("second capitol = %+v, want ordinal II", second.Capitol)
	}
	if second.Sectiune != nil {
		t.Errorf("second sectiune = %+v, want nil after chapter change", second.Sectiune)
	}
}

func TestParseStructureDropsNearEmptyArticles(t *testing.T) {
	blocks := []Block{
		{Role: RoleArticle, Text: "Articolul 1"},
		{Role: RoleArticleBody, Text: "abc"},
		{Role: RoleArticle, Text: "Articolul 2"},
		{Role: RoleArticleBody, Text: "Acest articol are conținut real și se păstrează."},
	}

	articles, _, warnings := ParseStructure(blocks)
	if len(articles) != 1 {
		t.Fatalf("articles = %d, want 1", len(articles))
	}
	if articles[0].Number != "2" {
		t.Errorf("kept article = %q, want 2", articles[0].Number)
	}
	// Sequence stays contiguous from zero after the drop.
	if articles[0].Seq != 0 {
		t.Errorf("seq = %d, want 0", articles[0].Seq)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "near-empty") {
		t.Errorf("warnings = %v, want one near-empty drop", warnings)
	}
}

func TestParseStructureAnnexes(t *testing.T) {
	blocks := []Block{
		{Role: RoleArticle, Text: "Articolul 1"},
		{Role: RoleArticleBody, Text: "Anexele nr. 1 și 2 fac parte integrantă din prezenta lege."},
		{Role: RoleAnnex, Text: "ANEXA 1 Lista autorităților publice"},
		{Role: RoleAnnexBody, Text: "Ministerul Finanțelor"},
		{Role: RoleUnknown, Text: "Ministerul Justiției"},
		{Role: RoleAnnex, Text: "ANEXA 2"},
		{Role: RoleArticleBody, Text: "Tabel cu valorile de referință pentru anul curent."},
	}

	articles, annexes, warnings := ParseStructure(blocks)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(articles) != 1 {
		t.Fatalf("articles = %d, want 1", len(articles))
	}
	if len(annexes) != 2 {
		t.Fatalf("annexes = %d, want 2", len(annexes))
	}

	if annexes[0].Number != "1" || annexes[0].Title != "Lista autorităților publice" {
		t.Errorf("annex 1 = %q %q", annexes[0].Number, annexes[0].Title)
	}
	if !strings.Contains(annexes[0].Text, "Ministerul Finanțelor") ||
		!strings.Contains(annexes[0].Text, "Ministerul Justiției") {
		t.Errorf("annex 1 text = %q, want both ministries", annexes[0].Text)
	}
	if annexes[1].Number != "2" || !strings.Contains(annexes[1].Text, "Tabel") {
		t.Errorf("annex 2 = %q %q", annexes[1].Number, annexes[1].Text)
	}
	if annexes[0].Seq != 0 || annexes[1].Seq != 1 {
		t.Errorf("annex seqs = %d %d, want 0 1", annexes[0].Seq, annexes[1].Seq)
	}
}

func TestParseStructureAnnexSwallowsInternalHeadings(t *testing.T) {
	blocks := []Block{
		{Role: RoleAnnex, Text: "ANEXA 1 Metodologie de calcul"},
		{Role: RoleCapitol, Text: "CAPITOLUL I Principii"},
		{Role: RoleArticle, Text: "Articolul 1"},
		{Role: RoleArticleBody, Text: "Calculul se face potrivit formulei din prezenta metodologie."},
	}

	articles, annexes, _ := ParseStructure(blocks)
	if len(articles) != 0 {
		t.Fatalf("articles = %d, want 0 (annex content)", len(articles))
	}
	if len(annexes) != 1 {
		t.Fatalf("annexes = %d, want 1", len(annexes))
	}
	text := annexes[0].Text
	for _, fragment := range []string{"CAPITOLUL I", "Articolul 1", "formulei"} {
		if !strings.Contains(text, fragment) {
			t.Errorf("annex text missing %q: %q", fragment, text)
		}
	}
}

func TestParseStructureDuplicateAnnexDropped(t *testing.T) {
	blocks := []Block{
		{Role: RoleAnnex, Text: "ANEXA 1 Prima variantă"},
		{Role: RoleAnnexBody, Text: "Conținutul primei variante a anexei."},
		{Role: RoleAnnex, Text: "ANEXA 1 A doua variantă"},
		{Role: RoleAnnexBody, Text: "Conținutul celei de a doua variante."},
	}

	_, annexes, warnings := ParseStructure(blocks)
	if len(annexes) != 1 {
		t.Fatalf("annexes = %d, want 1", len(annexes))
	}
	if annexes[0].Title != "Prima variantă" {
		t.Errorf("kept annex title = %q, want the first one", annexes[0].Title)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "duplicate") {
		t.Errorf("warnings = %v, want one duplicate drop", warnings)
	}
}

func TestParseStructureUnknownBlocks(t *testing.T) {
	blocks := []Block{
		{Role: RoleUnknown, Text: "Notă de subsol fără părinte"},
		{Role: RoleArticle, Text: "Articolul 1"},
		{Role: RoleArticleBody, Text: "Prima parte a articolului este aici."},
		{Role: RoleUnknown, Text: "Continuarea articolului fără marcaj de rol."},
	}

	articles, _, warnings := ParseStructure(blocks)
	if len(articles) != 1 {
		t.Fatalf("articles = %d, want 1", len(articles))
	}
	if !strings.Contains(articles[0].Text, "Continuarea articolului") {
		t.Errorf("article text = %q, want unknown block appended", articles[0].Text)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "Notă de subsol") {
		t.Errorf("warnings = %v, want one discard for the orphan block", warnings)
	}
}

func TestParseStructureArticleUnic(t *testing.T) {
	blocks := []Block{
		{Role: RoleArticle, Text: "Articolul unic"},
		{Role: RoleArticleBody, Text: "Se aprobă metodologia prevăzută în anexă."},
	}

	articles, _, _ := ParseStructure(blocks)
	if len(articles) != 1 {
		t.Fatalf("articles = %d, want 1", len(articles))
	}
	if articles[0].Number != "unic" {
		t.Errorf("number = %q, want unic", articles[0].Number)
	}
	if !articles[0].Context.IsEmpty() {
		t.Errorf("context = %+v, want empty for a flat act", articles[0].Context)
	}
}
