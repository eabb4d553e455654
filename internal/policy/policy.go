// Package policy decides whether a classified article becomes an incident.
package policy

import (
	"fmt"

	"github.com/Redoy0/political-violence-monitor/internal/domain"
)

// Acceptance thresholds.
const (
	// MinConfidence is the floor below which no candidate is accepted.
	MinConfidence = 0.6
	// UnclearRoleConfidence is the stricter bar that compensates for
	// unclear or defender framing.
	UnclearRoleConfidence = 0.7
)

// Decision is the outcome of evaluating one candidate.
type Decision struct {
	Accepted bool
	Reason   string
}

// Evaluate applies the acceptance policy to a classification. Rejection is
// expected steady-state behavior, not an error: most articles do not
// qualify as incidents.
func Evaluate(c domain.Classification) Decision {
	if !c.IsViolentPolitical {
		return Decision{Reason: "not a violent political event"}
	}
	if c.Confidence < MinConfidence {
		return Decision{Reason: fmt.Sprintf("confidence %.2f below %.2f", c.Confidence, MinConfidence)}
	}
	if c.PoliticalParty == "" || c.PoliticalParty == domain.UnknownParty {
		return Decision{Reason: "no perpetrator party attributed"}
	}
	if c.Role != domain.RoleAggressor && c.Confidence < UnclearRoleConfidence {
		return Decision{
			Reason: fmt.Sprintf("role %q needs confidence >= %.2f, got %.2f",
				c.Role, UnclearRoleConfidence, c.Confidence),
		}
	}
	return Decision{Accepted: true}
}
