package parser

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// BlockRole is the semantic role of one body block, derived from the source
// markup class or, failing that, from the block's own text.
type BlockRole int

const (
	RoleUnknown BlockRole = iota
	RoleTitlu
	RoleCapitol
	RoleSectiune
	RoleSubsectiune
	RoleArticle
	RoleArticleBody
	RoleAnnex
	RoleAnnexBody
)

func (r BlockRole) String() string {
	switch r {
	case RoleTitlu:
		return "titlu"
	case RoleCapitol:
		return "capitol"
	case RoleSectiune:
		return "sectiune"
	case RoleSubsectiune:
		return "subsectiune"
	case RoleArticle:
		return "article"
	case RoleArticleBody:
		return "article-body"
	case RoleAnnex:
		return "annex"
	case RoleAnnexBody:
		return "annex-body"
	default:
		return "unknown"
	}
}

// Block is one typed block of the document body.
type Block struct {
	Role BlockRole
	Text string
}

// HeaderFragment is the document header carved off ahead of the body
// blocks: the act heading line, the act title, the issuing authority and
// the "publicat în" gazette line.
type HeaderFragment struct {
	Heading   string
	Title     string
	Issuer    string
	Published string
}

// Document is the tokenized form of one act: header fragment plus the
// ordered body blocks.
type Document struct {
	Header HeaderFragment
	Blocks []Block
}

// blockClassRoles maps the portal's span classes to block roles. Markup
// variants without classes fall back to the text patterns below.
var blockClassRoles = map[string]BlockRole{
	"S_TTL":     RoleTitlu,
	"S_CAP":     RoleCapitol,
	"S_SEC":     RoleSectiune,
	"S_SSC":     RoleSubsectiune,
	"S_ART":     RoleArticle,
	"S_PAR":     RoleArticleBody,
	"S_ANX":     RoleAnnex,
	"S_ANX_BDY": RoleAnnexBody,
}

// Text patterns for markup without semantic classes.
var (
	titluPattern       = regexp.MustCompile(`(?i)^TITLUL\s+([IVXLCDM]+|[0-9]+)\b[\s.:–-]*(.*)$`)
	capitolPattern     = regexp.MustCompile(`(?i)^CAP(?:ITOLUL|\.)\s+([IVXLCDM]+|[0-9]+)\b[\s.:–-]*(.*)$`)
	sectiunePattern    = regexp.MustCompile(`(?i)^SEC[ŢȚT]IUNEA\s+(?:a\s+)?([0-9]+|[IVXLCDM]+|unic[ăa]?)(?:\s*-\s*a)?\b[\s.:–-]*(.*)$`)
	subsectiunePattern = regexp.MustCompile(`(?i)^SUBSEC[ŢȚT]IUNEA\s+(?:a\s+)?([0-9]+|[IVXLCDM]+|unic[ăa]?)(?:\s*-\s*a)?\b[\s.:–-]*(.*)$`)
	articolPattern     = regexp.MustCompile(`(?i)^ART(?:ICOLUL|\.)\s+([0-9]+(?:\^[0-9]+)?[a-z]?|[IVXLCDM]+|unic)\b[\s.:–-]*(.*)$`)
	anexaPattern       = regexp.MustCompile(`(?i)^ANEXA\s*(?:NR\.?\s*)?([0-9]+|[IVXLCDM]+)?\b[\s.:–-]*(.*)$`)
	issuerPattern      = regexp.MustCompile(`(?i)^(?:EMITENT[:\s]*)?\s*((?:PARLAMENTUL|GUVERNUL|MINISTERUL|PREȘEDINTELE|PRESEDINTELE|BANCA\s+NAȚIONALĂ|BANCA\s+NATIONALA|AUTORITATEA|AGENȚIA|AGENTIA|CASA\s+NAȚIONALĂ|CASA\s+NATIONALA)\b.*)$`)
)

// skippedElements are subtrees the tokenizer never descends into.
var skippedElements = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
	"nav":    true,
	"footer": true,
	"table":  true, // amendment tables, not act body
}

// Tokenize parses raw act HTML into a header fragment and an ordered
// sequence of typed body blocks.
func Tokenize(content string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("error parsing html: %w", err)
	}

	raw := collectBlocks(root)
	doc := &Document{}
	doc.Header, doc.Blocks = splitHeader(raw)
	return doc, nil
}

// collectBlocks walks the HTML tree emitting one block per paragraph-level
// element. A mapped span class anywhere inside the element fixes the role;
// otherwise the text patterns decide.
func collectBlocks(root *html.Node) []Block {
	var blocks []Block

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skippedElements[n.Data] {
				return
			}
			switch n.Data {
			case "p", "h1", "h2", "h3", "h4", "h5", "li":
				text := normalizeSpace(nodeText(n))
				if text == "" {
					return
				}
				role := classRole(n)
				if role == RoleUnknown {
					role = textRole(text)
				}
				blocks = append(blocks, Block{Role: role, Text: text})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return blocks
}

// classRole returns the role of the first mapped class found in the
// element's subtree, RoleUnknown when none is present.
func classRole(n *html.Node) BlockRole {
	var found BlockRole
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != RoleUnknown {
			return
		}
		if n.Type == html.ElementNode {
			for _, cls := range strings.Fields(attr(n, "class")) {
				if role, ok := blockClassRoles[cls]; ok {
					found = role
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

// textRole classifies a block by its leading text.
func textRole(text string) BlockRole {
	switch {
	case articolPattern.MatchString(text):
		return RoleArticle
	case capitolPattern.MatchString(text):
		return RoleCapitol
	case subsectiunePattern.MatchString(text):
		return RoleSubsectiune
	case sectiunePattern.MatchString(text):
		return RoleSectiune
	case titluPattern.MatchString(text):
		return RoleTitlu
	case anexaPattern.MatchString(text) && strings.HasPrefix(strings.ToUpper(text), "ANEXA"):
		return RoleAnnex
	default:
		return RoleUnknown
	}
}

// splitHeader consumes the leading untyped blocks into the header fragment.
// The heading is the first block opening with an act-type token; the title
// is the first ordinary block after it. Everything from the first typed
// block onward is body.
func splitHeader(raw []Block) (HeaderFragment, []Block) {
	var header HeaderFragment
	i := 0
	for ; i < len(raw); i++ {
		b := raw[i]
		if b.Role != RoleUnknown {
			break
		}
		text := b.Text
		switch {
		case header.Heading == "" && actHeadingPattern.MatchString(text):
			header.Heading = text
		case strings.Contains(strings.ToUpper(stripDiacritics(text)), "MONITORUL OFICIAL"):
			if header.Published == "" {
				header.Published = text
			}
		case issuerPattern.MatchString(text):
			if header.Issuer == "" {
				header.Issuer = issuerPattern.FindStringSubmatch(text)[1]
			}
		case header.Heading != "" && header.Title == "":
			header.Title = text
		}
	}
	return header, raw[i:]
}

// nodeText collects all visible text under a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
