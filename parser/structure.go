package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/octavianissuemonitoring/parser-law-sub001/data"
)

// noiseThreshold is the maximum trimmed length of a record body that is
// still considered a markup artifact rather than a real article or annex.
const noiseThreshold = 5

// ParseStructure walks the typed body blocks and emits ordered article and
// annex records, each carrying a snapshot of the hierarchy context active
// when it was opened.
//
// The hierarchy stack is a local value: heading blocks push or replace
// their level and clear all lower levels, article and annex blocks only
// snapshot it. Unparseable blocks degrade to warnings, never to failures.
func ParseStructure(blocks []Block) ([]*data.Article, []*data.Annex, []string) {
	var (
		articles []*data.Article
		annexes  []*data.Annex
		warnings []string

		ctx data.HierarchyContext

		openArticle *data.Article
		articleText strings.Builder

		openAnnex *data.Annex
		annexText strings.Builder

		annexSeen    bool
		annexNumbers = map[string]bool{}
	)

	closeArticle := func() {
		if openArticle == nil {
			return
		}
		text := strings.TrimSpace(articleText.String())
		articleText.Reset()
		a := openArticle
		openArticle = nil
		if len([]rune(text)) <= noiseThreshold {
			warnings = append(warnings, fmt.Sprintf("dropping near-empty article %q", a.Number))
			return
		}
		a.Text = text
		a.Seq = len(articles)
		articles = append(articles, a)
	}

	closeAnnex := func() {
		if openAnnex == nil {
			return
		}
		text := strings.TrimSpace(annexText.String())
		annexText.Reset()
		a := openAnnex
		openAnnex = nil
		if len([]rune(text)) <= noiseThreshold && a.Title == "" {
			warnings = append(warnings, fmt.Sprintf("dropping near-empty annex %q", a.Number))
			return
		}
		if annexNumbers[a.Number] {
			warnings = append(warnings, fmt.Sprintf("dropping duplicate annex %q", a.Number))
			return
		}
		annexNumbers[a.Number] = true
		a.Text = text
		a.Seq = len(annexes)
		annexes = append(annexes, a)
	}

	appendBody := func(text string) bool {
		switch {
		case openAnnex != nil:
			annexText.WriteString(text)
			annexText.WriteString("\n")
			return true
		case openArticle != nil:
			articleText.WriteString(text)
			articleText.WriteString("\n")
			return true
		default:
			return false
		}
	}

	setLevel := func(role BlockRole, level *data.HierarchyLevel) {
		// Entering a heading closes whatever record was open and resets
		// every level below the one being set.
		closeArticle()
		closeAnnex()
		switch role {
		case RoleTitlu:
			ctx.Titlu = level
			ctx.Capitol, ctx.Sectiune, ctx.Subsectiune = nil, nil, nil
		case RoleCapitol:
			ctx.Capitol = level
			ctx.Sectiune, ctx.Subsectiune = nil, nil
		case RoleSectiune:
			ctx.Sectiune = level
			ctx.Subsectiune = nil
		case RoleSubsectiune:
			ctx.Subsectiune = level
		}
	}

	for _, b := range blocks {
		// Once an annex is open its internal headings and articles are
		// annex content, not act structure.
		if openAnnex != nil && b.Role != RoleAnnex {
			appendBody(b.Text)
			continue
		}

		switch b.Role {
		case RoleTitlu:
			setLevel(b.Role, headingLevel(titluPattern, b.Text))
		case RoleCapitol:
			setLevel(b.Role, headingLevel(capitolPattern, b.Text))
		case RoleSectiune:
			setLevel(b.Role, headingLevel(sectiunePattern, b.Text))
		case RoleSubsectiune:
			setLevel(b.Role, headingLevel(subsectiunePattern, b.Text))

		case RoleArticle:
			// An article heading inside an annex is annex content, not a
			// new article: the annex heading ended the article stream.
			if annexSeen {
				if !appendBody(b.Text) {
					warnings = append(warnings, fmt.Sprintf("discarding article heading after annexes: %q", truncate(b.Text, 60)))
				}
				continue
			}
			closeArticle()
			number, rest := splitHeading(articolPattern, b.Text)
			openArticle = &data.Article{
				Number:   number,
				Context:  ctx,
				AIStatus: data.AIStatusPending,
			}
			if rest != "" {
				articleText.WriteString(rest)
				articleText.WriteString("\n")
			}

		case RoleAnnex:
			closeArticle()
			closeAnnex()
			annexSeen = true
			number, rest := splitHeading(anexaPattern, b.Text)
			if number == "" {
				number = "1"
			}
			openAnnex = &data.Annex{
				Number:   number,
				Title:    rest,
				AIStatus: data.AIStatusPending,
			}

		case RoleArticleBody, RoleAnnexBody:
			if !appendBody(b.Text) {
				warnings = append(warnings, fmt.Sprintf("discarding body block outside any record: %q", truncate(b.Text, 60)))
			}

		default:
			// Unknown blocks continue the innermost open record when one
			// exists and are otherwise discarded with a warning.
			if !appendBody(b.Text) {
				warnings = append(warnings, fmt.Sprintf("discarding unrecognized block: %q", truncate(b.Text, 60)))
			}
		}
	}

	closeArticle()
	closeAnnex()

	return articles, annexes, warnings
}

// headingLevel extracts the ordinal and trailing label of a heading block.
func headingLevel(pattern *regexp.Regexp, text string) *data.HierarchyLevel {
	ordinal, label := splitHeading(pattern, text)
	return &data.HierarchyLevel{Ordinal: ordinal, Label: label}
}

// splitHeading returns the captured ordinal and the remaining free text of
// a heading block; the full trimmed text becomes the label when the
// pattern does not match (class-tagged markup variants).
func splitHeading(pattern *regexp.Regexp, text string) (string, string) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return "", strings.TrimSpace(text)
	}
	return m[1], strings.TrimSpace(m[2])
}
