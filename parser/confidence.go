package parser

import "github.com/octavianissuemonitoring/parser-law-sub001/data"

// Confidence weights. Type and title dominate because they are the only
// required fields; number and date are legitimately absent for some acts
// and weigh less.
const (
	weightActType  = 0.20
	weightTitle    = 0.20
	weightNumber   = 0.05
	weightDate     = 0.05
	weightContext  = 0.30
	weightWarnings = 0.20
)

// Score computes the parse quality score in [0,1]: metadata presence plus
// hierarchy-context coverage minus a warning-ratio penalty. Adding a
// missing field never lowers the score and adding a warning never raises
// it.
func Score(r *data.ParseResult) float64 {
	score := 0.0

	if r.Metadata.ActType != "" {
		score += weightActType
	}
	if r.Metadata.Title != "" {
		score += weightTitle
	}
	if r.Metadata.Number != nil {
		score += weightNumber
	}
	if r.Metadata.IssueDate != nil {
		score += weightDate
	}

	score += weightContext * contextCoverage(r.Articles)

	blocks := r.BlockCount
	if blocks < 1 {
		blocks = 1
	}
	ratio := float64(len(r.Warnings)) / float64(blocks)
	if ratio > 1 {
		ratio = 1
	}
	score += weightWarnings * (1 - ratio)

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// contextCoverage is the fraction of articles carrying a non-empty
// hierarchy context. Flat acts with no articles at all count as fully
// covered.
func contextCoverage(articles []*data.Article) float64 {
	if len(articles) == 0 {
		return 1
	}
	covered := 0
	for _, a := range articles {
		if !a.Context.IsEmpty() {
			covered++
		}
	}
	return float64(covered) / float64(len(articles))
}
