package domain

// Casualties holds the injured and killed counts for an event.
type Casualties struct {
	Injured int `json:"injured"`
	Killed  int `json:"killed"`
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Classification is the per-article analysis result. It is ephemeral and
// only feeds the acceptance policy; it is never persisted directly.
type Classification struct {
	IsViolentPolitical bool
	Location           string
	Coordinates        *Coordinates
	Casualties         Casualties
	PoliticalParty     string
	Role               PerpetratorRole
	Severity           Severity
	Description        string
	Images             []string
	Confidence         float64
}
