// Package classify produces a Classification for each article, via an AI
// call with a deterministic keyword fallback.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Redoy0/political-violence-monitor/internal/domain"
	"github.com/Redoy0/political-violence-monitor/internal/geo"
	"github.com/Redoy0/political-violence-monitor/internal/logger"
)

// ErrNoJSONObject indicates the model reply contained no JSON object.
var ErrNoJSONObject = errors.New("no JSON object in model reply")

// Counter counts events. Satisfied by prometheus counters.
type Counter interface {
	Inc()
}

// Classifier classifies articles. Classify never fails outward: any error
// on the AI path engages the keyword fallback.
type Classifier struct {
	ai              AIClient
	fallback        *fallbackMatcher
	fallbackCounter Counter
	logger          logger.Interface
}

// New creates a classifier around the given AI capability.
func New(ai AIClient, log logger.Interface) *Classifier {
	return &Classifier{
		ai:       ai,
		fallback: newFallbackMatcher(),
		logger:   log,
	}
}

// SetFallbackCounter wires a counter incremented whenever the keyword
// fallback decides a classification.
func (c *Classifier) SetFallbackCounter(ctr Counter) {
	c.fallbackCounter = ctr
}

// Classify analyzes one article. The AI path is tried first; on any
// failure (transport, empty reply, unparseable shape) the deterministic
// fallback decides instead.
func (c *Classifier) Classify(ctx context.Context, title, content string) domain.Classification {
	result, err := c.classifyAI(ctx, title, content)
	if err != nil {
		if c.fallbackCounter != nil {
			c.fallbackCounter.Inc()
		}
		c.logger.Warn("AI classification failed, using keyword fallback",
			"title", truncateRunes(title, 60), "error", err)
		return c.fallback.Fallback(title, content)
	}
	return result
}

func (c *Classifier) classifyAI(ctx context.Context, title, content string) (domain.Classification, error) {
	reply, err := c.ai.Complete(ctx, systemPrompt, buildUserPrompt(title, content))
	if err != nil {
		return domain.Classification{}, err
	}

	payload, err := extractJSONObject(reply)
	if err != nil {
		return domain.Classification{}, err
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return domain.Classification{}, fmt.Errorf("parse model JSON: %w", err)
	}

	result := decodeClassification(raw, title)

	// Coordinates are resolved only for confirmed violent-political events
	// with a stated location.
	if result.IsViolentPolitical && result.Location != "" {
		coords := geo.Resolve(result.Location)
		result.Coordinates = &coords
	}

	return result, nil
}

// decodeClassification coerces the model's untrusted, partially-typed
// payload into a Classification, defaulting each missing or invalid field.
func decodeClassification(raw map[string]any, title string) domain.Classification {
	result := domain.Classification{
		IsViolentPolitical: coerceBool(raw["isViolentPolitical"]),
		Location:           coerceString(raw["location"], "অজানা"),
		PoliticalParty:     coerceString(raw["politicalParty"], domain.UnknownParty),
		Description:        coerceString(raw["description"], title),
		Confidence:         coerceFloat(raw["confidence"], 0.5),
		Images:             []string{},
	}

	if casualties, ok := raw["casualties"].(map[string]any); ok {
		result.Casualties.Injured = coerceCount(casualties["injured"])
		result.Casualties.Killed = coerceCount(casualties["killed"])
	}

	role := domain.PerpetratorRole(coerceString(raw["perpetratorRole"], string(domain.RoleUnclear)))
	if !role.Valid() {
		role = domain.RoleUnclear
	}
	result.Role = role

	severity := domain.Severity(coerceString(raw["severity"], string(domain.SeverityMedium)))
	if !severity.Valid() {
		severity = domain.SeverityMedium
	}
	result.Severity = severity

	return result
}

// extractJSONObject returns the first balanced JSON object substring,
// tolerating leading and trailing commentary around it. Braces inside
// string literals are skipped.
func extractJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSONObject
}

func coerceBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func coerceString(v any, fallback string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func coerceFloat(v any, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return fallback
}

// coerceCount decodes a casualty count, defaulting negatives and
// malformed values to zero.
func coerceCount(v any) int {
	switch n := v.(type) {
	case float64:
		if n > 0 {
			return int(n)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && i > 0 {
			return i
		}
	}
	return 0
}
