package domain

// Report is a complaint filed by one user about another user or a listing.
// TargetID is not checked against existing rows.
type Report struct {
	ID         string
	ReporterID string
	TargetID   string
	Reason     string
}
