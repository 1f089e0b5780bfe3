// Package triage guesses urgency, category and location from the free text of
// an emergency request using keyword matching.
package triage

import (
	"regexp"
	"strings"
)

type Result struct {
	Urgency  string
	Type     string
	Location string
}

type rule struct {
	label    string
	keywords []string
}

var urgencyRules = []rule{
	{"High", []string{"urgent", "emergency", "critical", "immediately"}},
	{"Medium", []string{"soon", "need help"}},
}

var typeRules = []rule{
	{"Medical", []string{"medical", "injury", "hurt", "pain"}},
	{"Food", []string{"food", "hungry", "water", "thirsty"}},
	{"Shelter", []string{"shelter", "home", "housing", "roof"}},
	{"Evacuation", []string{"evacuate", "escape", "leave", "flee"}},
}

// "at 123 Main St. ..." -> "123 Main St"
var locationPattern = regexp.MustCompile(`(?i)\bat\s+([^.]+)`)

// Classify never fails: text without any matching keyword is Low / Other /
// Unknown.
func Classify(text string) Result {
	lower := strings.ToLower(text)
	return Result{
		Urgency:  firstMatch(lower, urgencyRules, "Low"),
		Type:     firstMatch(lower, typeRules, "Other"),
		Location: ExtractLocation(text),
	}
}

// ExtractLocation returns the phrase following "at", up to the next period.
func ExtractLocation(text string) string {
	m := locationPattern.FindStringSubmatch(text)
	if m == nil {
		return "Unknown"
	}
	if loc := strings.TrimSpace(m[1]); loc != "" {
		return loc
	}
	return "Unknown"
}

func firstMatch(lower string, rules []rule, fallback string) string {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.label
			}
		}
	}
	return fallback
}
