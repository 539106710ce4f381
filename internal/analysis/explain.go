package analysis

import (
	"regexp"
	"strings"
)

const (
	summaryLength = 300
	maxKeyTerms   = 6

	quantitativeBullet = "Specifies quantitative limits or measurements."
	closingTip         = "Tip: Convert units to a single system and create a checklist to verify each constraint before scrutineering."
)

// Compliance words, checked in this order; only the first hit is reported.
var complianceKeywords = []string{"minimum", "maximum", "must", "shall", "not", "prohibited", "required"}

// RegulationKeywords are reported as "Key terms" in this order.
var RegulationKeywords = []string{
	"must", "shall", "should", "may", "not", "minimum", "maximum",
	"tolerances", "dimensions", "weight", "width", "height", "length",
	"clearance", "radius", "material", "fastener", "safety", "inspection",
}

var quantityPattern = regexp.MustCompile(`(?i)[0-9]+(?:\.[0-9]+)?\s?(mm|cm|m|kg|deg|°|%|in|inch|nm|n|lbs)?`)

// Explanation is a short summary of a regulation passage plus rule-of-thumb
// annotations.
type Explanation struct {
	Summary string   `json:"summary"`
	Bullets []string `json:"bullets"`
}

// Explain summarizes text and annotates it with compliance hints.
func Explain(text string) Explanation {
	t := strings.TrimSpace(text)
	lower := strings.ToLower(t)
	bullets := []string{}

	for _, kw := range complianceKeywords {
		if strings.Contains(lower, kw) {
			bullets = append(bullets, "Identifies a compliance rule: contains the word '"+kw+"'.")
			break
		}
	}

	if quantityPattern.MatchString(t) {
		bullets = append(bullets, quantitativeBullet)
	}

	present := make([]string, 0, maxKeyTerms)
	for _, kw := range RegulationKeywords {
		if len(present) == maxKeyTerms {
			break
		}
		if strings.Contains(lower, kw) {
			present = append(present, kw)
		}
	}
	if len(present) > 0 {
		bullets = append(bullets, "Key terms: "+strings.Join(present, ", "))
	}

	bullets = append(bullets, closingTip)

	return Explanation{
		Summary: Ellipsize(t, summaryLength),
		Bullets: bullets,
	}
}
