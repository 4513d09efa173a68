package domain

// Office is a node in the organizational hierarchy. Hierarchy holds the
// materialized path of ancestor office IDs (e.g. ".1.4.9."), which makes
// descendant resolution a prefix match.
type Office struct {
	OfficeID       string  `json:"officeID"` // Primary key (UUID)
	Name           string  `json:"name"`
	ParentOfficeID *string `json:"parentOfficeID"` // Nil for the head office
	Hierarchy      string  `json:"hierarchy"`
	AuditFields
}
