package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"golang.org/x/text/unicode/norm"

	"github.com/Redoy0/political-violence-monitor/internal/domain"
)

// fallbackConfidence sits above the acceptance floor so degraded-mode
// detections are not silently useless, yet below the stricter bar that
// non-aggressor candidates must clear.
const fallbackConfidence = 0.6

// violenceKeywords and politicsKeywords gate the violent-political flag:
// both sets must hit for a positive.
var violenceKeywords = []string{
	"আক্রমণ", "মারামারি", "সংঘর্ষ", "হামলা", "ভাংচুর",
	"গুলি", "বোমা", "নিহত", "আহত", "হত্যা", "আগুন",
	"অবরোধ", "হরতাল", "তাণ্ডব", "বিক্ষোভ",
}

var politicsKeywords = []string{
	"আওয়ামী লীগ", "বিএনপি", "জামায়াত", "জাতীয় পার্টি",
	"রাজনৈতিক", "নেতা", "কর্মী", "সমর্থক", "দল",
}

// severityLadder is priority-ordered, most severe first: the first tier
// with any hit decides, so a death term wins over a mere clash term.
var severityLadder = []struct {
	severity domain.Severity
	terms    []string
}{
	{domain.SeveritySevere, []string{"নিহত", "হত্যা", "গুলি"}},
	{domain.SeverityHeavy, []string{"আহত", "হামলা", "আক্রমণ"}},
	{domain.SeverityMedium, []string{"মারামারি", "সংঘর্ষ"}},
}

// partyLadder maps detection terms to canonical party names, checked in
// order; the first match attributes the party.
var partyLadder = []struct {
	term  string
	party string
}{
	{"আওয়ামী লীগ", "আওয়ামী লীগ"},
	{"বিএনপি", "বিএনপি"},
	{"জামায়াত", "জামায়াতে ইসলামী"},
	{"জাতীয় পার্টি", "জাতীয় পার্টি"},
}

var numberPattern = regexp.MustCompile(`\d+`)

// fallbackMatcher bundles the Aho-Corasick automatons for one pass over
// the text per keyword set.
type fallbackMatcher struct {
	violence *ahocorasick.Matcher
	politics *ahocorasick.Matcher
	severity *ahocorasick.Matcher
	party    *ahocorasick.Matcher

	severityTerms []string
	partyTerms    []string
}

func newFallbackMatcher() *fallbackMatcher {
	m := &fallbackMatcher{}

	for _, tier := range severityLadder {
		m.severityTerms = append(m.severityTerms, tier.terms...)
	}
	for _, p := range partyLadder {
		m.partyTerms = append(m.partyTerms, p.term)
	}

	m.violence = ahocorasick.NewStringMatcher(normalizeAll(violenceKeywords))
	m.politics = ahocorasick.NewStringMatcher(normalizeAll(politicsKeywords))
	m.severity = ahocorasick.NewStringMatcher(normalizeAll(m.severityTerms))
	m.party = ahocorasick.NewStringMatcher(normalizeAll(m.partyTerms))

	return m
}

// Fallback classifies by deterministic keyword matching. It is the degraded
// mode used whenever the AI path fails; it cannot establish aggressor or
// victim framing, so the role is always unclear.
func (m *fallbackMatcher) Fallback(title, content string) domain.Classification {
	text := normalizeText(title + " " + content)
	data := []byte(text)

	hasViolence := len(m.violence.Match(data)) > 0
	hasPolitics := len(m.politics.Match(data)) > 0

	severityHits := hitSet(m.severityTerms, m.severity.Match(data))
	severity := domain.SeverityLight
	for _, tier := range severityLadder {
		if anyHit(severityHits, tier.terms) {
			severity = tier.severity
			break
		}
	}

	partyHits := hitSet(m.partyTerms, m.party.Match(data))
	party := domain.UnknownParty
	for _, p := range partyLadder {
		if partyHits[normalizeText(p.term)] {
			party = p.party
			break
		}
	}

	return domain.Classification{
		IsViolentPolitical: hasViolence && hasPolitics,
		Location:           "অজানা",
		Casualties:         extractCasualties(content),
		PoliticalParty:     party,
		Role:               domain.RoleUnclear,
		Severity:           severity,
		Description:        truncateRunes(title, 100),
		Images:             []string{},
		Confidence:         fallbackConfidence,
	}
}

// extractCasualties takes the first two integers found anywhere in the
// content: first injured, then killed. Crude, but acceptable only as a
// degraded-mode heuristic.
func extractCasualties(content string) domain.Casualties {
	var c domain.Casualties
	numbers := numberPattern.FindAllString(content, 2)
	if len(numbers) > 0 {
		c.Injured, _ = strconv.Atoi(numbers[0])
	}
	if len(numbers) > 1 {
		c.Killed, _ = strconv.Atoi(numbers[1])
	}
	return c
}

// normalizeText lowercases and NFC-normalizes text so that composed and
// decomposed Bengali sequences compare equal.
func normalizeText(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}

func normalizeAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = normalizeText(t)
	}
	return out
}

// hitSet maps matched automaton indices back to their normalized terms.
func hitSet(terms []string, indices []int) map[string]bool {
	hits := make(map[string]bool, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(terms) {
			hits[normalizeText(terms[idx])] = true
		}
	}
	return hits
}

func anyHit(hits map[string]bool, terms []string) bool {
	for _, t := range terms {
		if hits[normalizeText(t)] {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
