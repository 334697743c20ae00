package data

import "time"

// ActType is the normalized kind of a legislative act.
type ActType string

// ActType constants matching the canonical vocabulary of the source portal
const (
	ActTypeLaw                = "LAW"                 // LEGE
	ActTypeEmergencyOrdinance = "EMERGENCY_ORDINANCE" // ORDONANȚĂ DE URGENȚĂ
	ActTypeOrdinance          = "ORDINANCE"           // ORDONANȚĂ
	ActTypeOrder              = "ORDER"               // ORDIN
	ActTypeDecision           = "DECISION"            // HOTĂRÂRE
	ActTypeMethodology        = "METHODOLOGY"         // METODOLOGIE
	ActTypeRegulation         = "REGULATION"          // REGULAMENT
	ActTypeNorm               = "NORM"                // NORME
)

// ActMetadata holds the act-level fields extracted from a document header.
// Number, issue date and gazette fields are legitimately absent for some
// acts (unnumbered methodologies, undated republications) and stay nil.
type ActMetadata struct {
	ActType       ActType    `json:"actType"`
	Number        *string    `json:"number"`
	Year          int        `json:"year"`
	IssueDate     *time.Time `json:"issueDate"`
	Title         string     `json:"title"`
	Issuer        *string    `json:"issuer"`
	GazetteNumber *string    `json:"gazetteNumber"`
	GazetteDate   *time.Time `json:"gazetteDate"`
	GazetteYear   *int       `json:"gazetteYear"`
	SourceURL     string     `json:"sourceUrl"` // unique identity across re-imports
}

// Act is a stored legislative act. SourceURL is the stable identity key;
// number+year is not unique (unnumbered and renumbered acts exist).
type Act struct {
	InternalId int    `json:"-"`
	Id         string `json:"id"`
	ActMetadata
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
