package parser

import (
	"fmt"

	"github.com/octavianissuemonitoring/parser-law-sub001/data"
)

// ActParser parses one legislative act document into a structured, scored
// ParseResult. A parser instance is bound to the act's source URL, which is
// the stable identity key across re-imports.
//
// Parsing is deterministic and stateless between documents: all hierarchy
// state lives inside a single Parse call, so distinct documents can be
// parsed concurrently.
type ActParser struct {
	sourceURL string
	metadata  *MetadataExtractor
}

// NewActParser creates a parser for the act at the given source URL.
func NewActParser(sourceURL string) *ActParser {
	return &ActParser{
		sourceURL: sourceURL,
		metadata:  NewMetadataExtractor(),
	}
}

// Parse tokenizes the HTML, extracts the header metadata, walks the body
// into articles and annexes and scores the result. Only a missing required
// metadata field is fatal; everything else degrades to warnings on the
// result.
func (p *ActParser) Parse(htmlContent string) (*data.ParseResult, error) {
	doc, err := Tokenize(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("error tokenizing document: %w", err)
	}

	meta, warnings, err := p.metadata.Extract(doc.Header)
	if err != nil {
		return nil, err
	}
	meta.SourceURL = p.sourceURL

	articles, annexes, structWarnings := ParseStructure(doc.Blocks)
	warnings = append(warnings, structWarnings...)

	result := &data.ParseResult{
		Metadata:   meta,
		Articles:   articles,
		Annexes:    annexes,
		Warnings:   warnings,
		BlockCount: len(doc.Blocks),
	}
	result.Confidence = Score(result)

	return result, nil
}
