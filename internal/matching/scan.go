package matching

import "sort"

// DuplicatePair links a contact to an earlier contact it probably duplicates.
type DuplicatePair struct {
	Contact *Contact
	Match   DuplicateMatch
}

// AsCandidate views an existing contact as a candidate for matching.
func (c Contact) AsCandidate() Candidate {
	return Candidate{
		Name:  c.Name,
		Email: optional(c.Email),
		Phone: c.Phone,
	}
}

// FindDuplicatePairs checks every contact against the contacts before it and
// returns the pairs that match, strongest first. Each unordered pair is reported
// once. Cost is quadratic in len(contacts); callers bound the input.
func (r Rules) FindDuplicatePairs(contacts []Contact) []DuplicatePair {
	var pairs []DuplicatePair
	for i := 1; i < len(contacts); i++ {
		for _, match := range r.FindDuplicates(contacts[i].AsCandidate(), contacts[:i]) {
			pairs = append(pairs, DuplicatePair{Contact: &contacts[i], Match: match})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Match.Confidence > pairs[j].Match.Confidence
	})

	return pairs
}
