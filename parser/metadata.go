package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/octavianissuemonitoring/parser-law-sub001/data"
)

// MetadataExtractionError reports that a required header field (act type,
// title) could not be determined. It aborts the parse for that document;
// optional fields never produce it.
type MetadataExtractionError struct {
	Field string
}

func (e *MetadataExtractionError) Error() string {
	return fmt.Sprintf("metadata extraction: required field %q could not be determined", e.Field)
}

// romanianMonths maps lowercase Romanian month names to month numbers.
var romanianMonths = map[string]time.Month{
	"ianuarie":   time.January,
	"februarie":  time.February,
	"martie":     time.March,
	"aprilie":    time.April,
	"mai":        time.May,
	"iunie":      time.June,
	"iulie":      time.July,
	"august":     time.August,
	"septembrie": time.September,
	"octombrie":  time.October,
	"noiembrie":  time.November,
	"decembrie":  time.December,
}

// actTypeVocabulary maps header tokens to canonical act types. Ordered
// longest-token-first so ORDONANȚĂ DE URGENȚĂ wins over ORDONANȚĂ and
// ORDONANȚĂ over ORDIN. Diacritic-free variants cover older documents.
var actTypeVocabulary = []struct {
	Token string
	Type  data.ActType
}{
	{"ORDONANȚĂ DE URGENȚĂ", data.ActTypeEmergencyOrdinance},
	{"ORDONANTA DE URGENTA", data.ActTypeEmergencyOrdinance},
	{"ORDONANȚĂ", data.ActTypeOrdinance},
	{"ORDONANTA", data.ActTypeOrdinance},
	{"METODOLOGIE", data.ActTypeMethodology},
	{"HOTĂRÂRE", data.ActTypeDecision},
	{"HOTARARE", data.ActTypeDecision},
	{"REGULAMENT", data.ActTypeRegulation},
	{"NORME", data.ActTypeNorm},
	{"ORDIN", data.ActTypeOrder},
	{"LEGE", data.ActTypeLaw},
}

// actTypeAlternation is the regex alternation over the vocabulary tokens,
// in vocabulary order.
var actTypeAlternation = func() string {
	tokens := make([]string, 0, len(actTypeVocabulary))
	for _, v := range actTypeVocabulary {
		tokens = append(tokens, regexp.QuoteMeta(v.Token))
	}
	return strings.Join(tokens, "|")
}()

// actHeadingPattern recognizes a header line that opens with an act type.
// Shared with the tokenizer to locate the heading among the header blocks.
var actHeadingPattern = regexp.MustCompile(`(?i)^\s*(` + actTypeAlternation + `)\b`)

const monthWord = `[a-zA-Zăâîșşțţ]+`

// MetadataExtractor pulls act-level metadata from the document header by
// applying an ordered cascade of three patterns, stopping at the first
// match:
//
//	full      — "<TYPE> nr. <N> din <day> <month> <year>"
//	short     — "<TYPE> nr. <N>/<year>"
//	no_number — "<TYPE> din <day> <month> <year>"
type MetadataExtractor struct {
	fullPattern     *regexp.Regexp
	shortPattern    *regexp.Regexp
	noNumberPattern *regexp.Regexp
	gazettePattern  *regexp.Regexp
}

// NewMetadataExtractor creates an extractor with compiled patterns.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{
		fullPattern: regexp.MustCompile(
			`(?i)^\s*(` + actTypeAlternation + `)\s+nr\.?\s*([0-9]+[A-Za-z]?)\s+din\s+([0-9]{1,2})\s+(` + monthWord + `)\s+([0-9]{4})`),
		shortPattern: regexp.MustCompile(
			`(?i)^\s*(` + actTypeAlternation + `)\s+nr\.?\s*([0-9]+[A-Za-z]?)\s*/\s*([0-9]{4})`),
		noNumberPattern: regexp.MustCompile(
			`(?i)^\s*(` + actTypeAlternation + `)\s+din\s+([0-9]{1,2})\s+(` + monthWord + `)\s+([0-9]{4})`),
		gazettePattern: regexp.MustCompile(
			`(?i)MONITORUL\s+OFICIAL(?:\s+AL\s+ROM[ÂA]NIEI)?[,\s]*(?:PARTEA\s+[IVX]+)?[,\s]*nr\.?\s*([0-9]+)(?:\s*bis)?(?:\s+din\s+([0-9]{1,2})\s+(` + monthWord + `)\s+([0-9]{4}))?`),
	}
}

// Extract returns the act metadata for a header fragment, plus non-fatal
// warnings. Act type and title are required; number, date and gazette
// fields default to nil.
func (e *MetadataExtractor) Extract(header HeaderFragment) (data.ActMetadata, []string, error) {
	var meta data.ActMetadata
	var warnings []string

	heading := strings.TrimSpace(header.Heading)

	switch {
	case e.fullPattern.MatchString(heading):
		m := e.fullPattern.FindStringSubmatch(heading)
		meta.ActType = normalizeActType(m[1])
		number := m[2]
		meta.Number = &number
		date, year, warn := resolveDate(m[3], m[4], m[5])
		meta.IssueDate = date
		meta.Year = year
		if warn != "" {
			warnings = append(warnings, warn)
		}
	case e.shortPattern.MatchString(heading):
		m := e.shortPattern.FindStringSubmatch(heading)
		meta.ActType = normalizeActType(m[1])
		number := m[2]
		meta.Number = &number
		meta.Year = atoi(m[3])
	case e.noNumberPattern.MatchString(heading):
		m := e.noNumberPattern.FindStringSubmatch(heading)
		meta.ActType = normalizeActType(m[1])
		date, year, warn := resolveDate(m[2], m[3], m[4])
		meta.IssueDate = date
		meta.Year = year
		if warn != "" {
			warnings = append(warnings, warn)
		}
	default:
		return meta, warnings, &MetadataExtractionError{Field: "actType"}
	}

	meta.Title = strings.TrimSpace(header.Title)
	if meta.Title == "" {
		return meta, warnings, &MetadataExtractionError{Field: "title"}
	}

	if issuer := strings.TrimSpace(header.Issuer); issuer != "" {
		meta.Issuer = &issuer
	}

	// Gazette reference comes from a separate "publicat în" node and is
	// never fatal.
	if published := strings.TrimSpace(header.Published); published != "" {
		gazetteWarnings := e.extractGazette(published, &meta)
		warnings = append(warnings, gazetteWarnings...)
	}

	return meta, warnings, nil
}

// extractGazette fills the official-gazette fields in place, returning
// warnings for anything it could not resolve.
func (e *MetadataExtractor) extractGazette(published string, meta *data.ActMetadata) []string {
	m := e.gazettePattern.FindStringSubmatch(published)
	if m == nil {
		return []string{fmt.Sprintf("gazette reference not recognized: %q", truncate(published, 80))}
	}

	number := m[1]
	meta.GazetteNumber = &number

	if m[2] == "" {
		return nil
	}
	date, year, warn := resolveDate(m[2], m[3], m[4])
	meta.GazetteDate = date
	if year > 0 {
		meta.GazetteYear = &year
	}
	if warn != "" {
		return []string{warn}
	}
	return nil
}

// resolveDate builds a calendar date from day/month-name/year strings. An
// unrecognized month name yields a nil date with a warning; the year is
// still returned.
func resolveDate(dayStr, monthName, yearStr string) (*time.Time, int, string) {
	year := atoi(yearStr)
	month, ok := romanianMonths[strings.ToLower(monthName)]
	if !ok {
		return nil, year, fmt.Sprintf("unrecognized month name %q", monthName)
	}
	date := time.Date(year, month, atoi(dayStr), 0, 0, 0, 0, time.UTC)
	return &date, year, ""
}

// normalizeActType maps a matched header token to the canonical enum.
func normalizeActType(token string) data.ActType {
	normalized := strings.ToUpper(stripDiacritics(token))
	for _, v := range actTypeVocabulary {
		if strings.ToUpper(stripDiacritics(v.Token)) == normalized {
			return v.Type
		}
	}
	return ""
}

var diacriticReplacer = strings.NewReplacer(
	"ă", "a", "â", "a", "î", "i", "ș", "s", "ş", "s", "ț", "t", "ţ", "t",
	"Ă", "A", "Â", "A", "Î", "I", "Ș", "S", "Ş", "S", "Ț", "T", "Ţ", "T",
)

func stripDiacritics(s string) string {
	return diacriticReplacer.Replace(s)
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
