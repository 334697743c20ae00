package data

// ParseResult is the complete output of parsing one act document:
// metadata, ordered articles and annexes, a confidence score in [0,1] and
// the non-fatal warnings accumulated along the way.
type ParseResult struct {
	Metadata   ActMetadata `json:"metadata"`
	Articles   []*Article  `json:"articles"`
	Annexes    []*Annex    `json:"annexes"`
	Confidence float64     `json:"confidence"`
	Warnings   []string    `json:"warnings"`

	// BlockCount is the number of body blocks the parser consumed,
	// retained for the warning-ratio term of the confidence score.
	BlockCount int `json:"blockCount"`
}
