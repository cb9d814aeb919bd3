package matching

import "fmt"

// DefaultThreshold is the minimum confidence a duplicate match needs to be reported.
const DefaultThreshold = 70

// Rules defines the thresholds and confidences used by the duplicate matcher.
// All values are on the 0..100 confidence scale.
type Rules struct {
	// Threshold is the minimum confidence for a match to be reported.
	Threshold int
	// NameSimilarityMin is the name similarity at which "name" counts as matched.
	NameSimilarityMin int
	// DomainSimilarityMin is the name similarity required before a shared
	// email domain counts as a partial match.
	DomainSimilarityMin int
	// PhoneConfidence is the confidence assigned to an exact phone match.
	PhoneConfidence int
	// DomainConfidence is the floor confidence assigned to a partial match.
	DomainConfidence int
}

// DefaultRules defines the matcher behavior used by FindDuplicates.
var DefaultRules = Rules{
	Threshold:           DefaultThreshold,
	NameSimilarityMin:   85,
	DomainSimilarityMin: 70,
	PhoneConfidence:     95,
	DomainConfidence:    80,
}

// WithThreshold returns a copy of the rules with a different reporting threshold.
func (r Rules) WithThreshold(threshold int) Rules {
	r.Threshold = threshold
	return r
}

// Validate reports the first value that falls outside 0..100.
func (r Rules) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"threshold", r.Threshold},
		{"name_similarity_min", r.NameSimilarityMin},
		{"domain_similarity_min", r.DomainSimilarityMin},
		{"phone_confidence", r.PhoneConfidence},
		{"domain_confidence", r.DomainConfidence},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > maxConfidence {
			return fmt.Errorf("%s must be between 0 and %d, got %d", f.name, maxConfidence, f.value)
		}
	}
	return nil
}
