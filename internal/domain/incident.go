// Package domain defines the core types shared across the monitor.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// UnknownParty is the reserved party value meaning no party could be attributed.
// Incidents bearing it must never be persisted.
const UnknownParty = "অজানা"

// Severity is the ordinal damage scale for an incident.
type Severity string

const (
	SeverityLight  Severity = "light"
	SeverityMedium Severity = "medium"
	SeverityHeavy  Severity = "heavy"
	SeveritySevere Severity = "severe"
)

// Valid reports whether s is one of the defined severity values.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLight, SeverityMedium, SeverityHeavy, SeveritySevere:
		return true
	}
	return false
}

// PerpetratorRole classifies whether the named party initiated the violence.
type PerpetratorRole string

const (
	RoleAggressor PerpetratorRole = "aggressor"
	RoleDefender  PerpetratorRole = "defender"
	RoleUnclear   PerpetratorRole = "unclear"
)

// Valid reports whether r is one of the defined role values.
func (r PerpetratorRole) Valid() bool {
	switch r {
	case RoleAggressor, RoleDefender, RoleUnclear:
		return true
	}
	return false
}

// Incident is a persisted record of a political-violence event attributed
// to a specific perpetrator party.
type Incident struct {
	ID             string          `json:"id" db:"id"`
	Title          string          `json:"title" db:"title"`
	Location       string          `json:"location" db:"location"`
	Latitude       float64         `json:"latitude" db:"latitude"`
	Longitude      float64         `json:"longitude" db:"longitude"`
	Injured        int             `json:"injured" db:"injured"`
	Killed         int             `json:"killed" db:"killed"`
	PoliticalParty string          `json:"political_party" db:"political_party"`
	Role           PerpetratorRole `json:"perpetrator_role" db:"perpetrator_role"`
	Date           time.Time       `json:"date" db:"date"`
	Severity       Severity        `json:"severity" db:"severity"`
	Description    string          `json:"description" db:"description"`
	SourceURL      string          `json:"source_url" db:"source_url"`
	Images         StringArray     `json:"images" db:"images"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// Validate checks the invariants a persisted incident must hold.
func (i *Incident) Validate() error {
	if i.Title == "" {
		return errors.New("title is required")
	}
	if i.PoliticalParty == "" || i.PoliticalParty == UnknownParty {
		return errors.New("political party must be attributed")
	}
	if i.Injured < 0 || i.Killed < 0 {
		return errors.New("casualty counts must be non-negative")
	}
	if !i.Severity.Valid() {
		return errors.New("invalid severity")
	}
	if !i.Role.Valid() {
		return errors.New("invalid perpetrator role")
	}
	return nil
}

// StringArray stores an ordered list of strings as a JSON column.
type StringArray []string

// Value implements driver.Valuer for database storage.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval.
func (a *StringArray) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return errors.New("unsupported type for StringArray")
}
