package parser

import "testing"

const classTaggedHTML = `<html><body>
<p>LEGE nr. 123 din 15 octombrie 2024</p>
<p>privind transparența decizională în administrația publică</p>
<p>EMITENT: PARLAMENTUL ROMÂNIEI</p>
<p>Publicat în MONITORUL OFICIAL nr. 1002 din 18 octombrie 2024</p>
<p><span class="S_CAP">CAPITOLUL I</span> Dispoziții generale</p>
<p><span class="S_ART">Articolul 1</span></p>
<p><span class="S_PAR">Prezenta lege stabilește cadrul general.</span></p>
<table><tr><td>tabel de modificări, ignorat</td></tr></table>
<p><span class="S_ANX">ANEXA 1</span></p>
<p><span class="S_ANX_BDY">Lista autorităților vizate de prezenta lege.</span></p>
</body></html>`

func TestTokenizeClassTagged(t *testing.T) {
	doc, err := Tokenize(classTaggedHTML)
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}

	if doc.Header.Heading != "LEGE nr. 123 din 15 octombrie 2024" {
		t.Errorf("heading = %q", doc.Header.Heading)
	}
	if doc.Header.Title != "privind transparența decizională în administrația publică" {
		t.Errorf("title = %q", doc.Header.Title)
	}
	if doc.Header.Issuer != "PARLAMENTUL ROMÂNIEI" {
		t.Errorf("issuer = %q", doc.Header.Issuer)
	}
	if doc.Header.Published == "" {
		t.Error("published line not captured")
	}

	wantRoles := []BlockRole{RoleCapitol, RoleArticle, RoleArticleBody, RoleAnnex, RoleAnnexBody}
	if len(doc.Blocks) != len(wantRoles) {
		t.Fatalf("blocks = %d, want %d: %+v", len(doc.Blocks), len(wantRoles), doc.Blocks)
	}
	for i, want := range wantRoles {
		if doc.Blocks[i].Role != want {
			t.Errorf("blocks[%d].Role = %s, want %s", i, doc.Blocks[i].Role, want)
		}
	}
	if doc.Blocks[0].Text != "CAPITOLUL I Dispoziții generale" {
		t.Errorf("blocks[0].Text = %q", doc.Blocks[0].Text)
	}
}

func TestTokenizeTextFallback(t *testing.T) {
	const plainHTML = `<html><body>
<p>ORDONANȚĂ DE URGENȚĂ nr. 57 din 3 iulie 2019</p>
<p>privind Codul administrativ</p>
<h2>TITLUL I Dispoziții generale</h2>
<h3>CAP. II</h3>
<p>SECȚIUNEA 1 Obiectul reglementării</p>
<p>SUBSECȚIUNEA 1</p>
<p>ART. 5 Principiile generale aplicabile administrației publice.</p>
<p>ANEXA nr. 2</p>
</body></html>`

	doc, err := Tokenize(plainHTML)
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}

	wantRoles := []BlockRole{RoleTitlu, RoleCapitol, RoleSectiune, RoleSubsectiune, RoleArticle, RoleAnnex}
	if len(doc.Blocks) != len(wantRoles) {
		t.Fatalf("blocks = %d, want %d: %+v", len(doc.Blocks), len(wantRoles), doc.Blocks)
	}
	for i, want := range wantRoles {
		if doc.Blocks[i].Role != want {
			t.Errorf("blocks[%d] (%q) role = %s, want %s",
				i, doc.Blocks[i].Text, doc.Blocks[i].Role, want)
		}
	}
}

func TestTokenizeSkipsNoise(t *testing.T) {
	const noisyHTML = `<html><head><title>Portal</title></head><body>
<nav><p>Acasă</p></nav>
<script>var x = 1;</script>
<p>LEGE nr. 1 din 5 mai 2020</p>
<p>privind ceva</p>
<p>   </p>
<footer><p>Contact</p></footer>
</body></html>`

	doc, err := Tokenize(noisyHTML)
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	if len(doc.Blocks) != 0 {
		t.Errorf("body blocks = %+v, want none", doc.Blocks)
	}
	if doc.Header.Heading != "LEGE nr. 1 din 5 mai 2020" {
		t.Errorf("heading = %q", doc.Header.Heading)
	}
	if doc.Header.Title != "privind ceva" {
		t.Errorf("title = %q", doc.Header.Title)
	}
}

func TestTokenizeNormalizesWhitespace(t *testing.T) {
	const html = `<html><body><p>ART.
	1   Textul    cu
	spații   multiple.</p></body></html>`

	doc, err := Tokenize(html)
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(doc.Blocks))
	}
	if doc.Blocks[0].Text != "ART. 1 Textul cu spații multiple." {
		t.Errorf("text = %q", doc.Blocks[0].Text)
	}
	if doc.Blocks[0].Role != RoleArticle {
		t.Errorf("role = %s, want article", doc.Blocks[0].Role)
	}
}
