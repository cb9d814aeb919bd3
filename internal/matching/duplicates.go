package matching

import (
	"fmt"
	"sort"
	"strings"
)

// accumulator is the running state for one existing contact. Confidence only
// ever moves up; the check that raises it sets the match type.
type accumulator struct {
	confidence    int
	matchType     MatchType
	matchedFields []string
}

func (a *accumulator) record(field string) {
	a.matchedFields = append(a.matchedFields, field)
}

func (a *accumulator) raise(confidence int, matchType MatchType) {
	if confidence > a.confidence {
		a.confidence = confidence
		a.matchType = matchType
	}
}

// probe holds the candidate's normalized fields, computed once per call.
type probe struct {
	name        string
	email       string
	emailDomain string
	hasDomain   bool
	phone       string
}

func newProbe(candidate Candidate) probe {
	p := probe{
		name:  candidate.Name,
		email: NormalizeEmail(candidate.Email),
		phone: NormalizePhone(optional(candidate.Phone)),
	}
	p.emailDomain, p.hasDomain = EmailDomain(p.email)
	return p
}

// emailMatches and phoneMatches never match a value that normalizes to "",
// so placeholders like "n/a" on both sides are not treated as equal.
func (p probe) emailMatches(c *Contact) bool {
	return p.email != "" && c.Email != nil && NormalizeEmail(*c.Email) == p.email
}

func (p probe) phoneMatches(c *Contact) bool {
	if p.phone == "" || c.Phone == nil {
		return false
	}
	return NormalizePhone(*c.Phone) == p.phone
}

func (p probe) domainMatches(c *Contact) bool {
	if !p.hasDomain || c.Email == nil {
		return false
	}
	domain, ok := EmailDomain(NormalizeEmail(*c.Email))
	return ok && domain == p.emailDomain
}

// comparison is one candidate/contact pair being scored.
type comparison struct {
	probe          probe
	contact        *Contact
	nameSimilarity int
}

// check is one step of the matcher. Steps run in a fixed order, most reliable first.
type check func(r Rules, cmp *comparison, acc *accumulator)

var checks = []check{
	checkEmail,
	checkPhone,
	checkName,
	checkEmailDomain,
}

func checkEmail(_ Rules, cmp *comparison, acc *accumulator) {
	if cmp.probe.emailMatches(cmp.contact) {
		acc.record(FieldEmail)
		acc.confidence = maxConfidence
		acc.matchType = MatchTypeExactEmail
	}
}

func checkPhone(r Rules, cmp *comparison, acc *accumulator) {
	if cmp.probe.phoneMatches(cmp.contact) {
		acc.record(FieldPhone)
		acc.raise(r.PhoneConfidence, MatchTypeExactPhone)
	}
}

func checkName(r Rules, cmp *comparison, acc *accumulator) {
	if cmp.nameSimilarity >= r.NameSimilarityMin {
		acc.record(FieldName)
		acc.raise(cmp.nameSimilarity, MatchTypeSimilarName)
	}
}

// checkEmailDomain lifts confidence to the domain floor and relabels name-based
// matches as partial. Exact email and phone matches keep their type.
func checkEmailDomain(r Rules, cmp *comparison, acc *accumulator) {
	if cmp.nameSimilarity < r.DomainSimilarityMin || !cmp.probe.domainMatches(cmp.contact) {
		return
	}
	acc.record(FieldEmailDomain)
	acc.confidence = max(acc.confidence, r.DomainConfidence)
	if acc.matchType != MatchTypeExactEmail && acc.matchType != MatchTypeExactPhone {
		acc.matchType = MatchTypePartialMatch
	}
}

// evaluate folds every check over one candidate/contact pair.
func (r Rules) evaluate(p probe, contact *Contact) accumulator {
	cmp := comparison{
		probe:          p,
		contact:        contact,
		nameSimilarity: NameSimilarity(p.name, contact.Name),
	}

	var acc accumulator
	for _, step := range checks {
		step(r, &cmp, &acc)
	}
	return acc
}

// FindDuplicates returns every existing contact that matches the candidate with
// confidence >= threshold, using DefaultRules otherwise.
func FindDuplicates(candidate Candidate, existing []Contact, threshold int) []DuplicateMatch {
	return DefaultRules.WithThreshold(threshold).FindDuplicates(candidate, existing)
}

// FindDuplicates returns the probable duplicates of candidate among existing,
// sorted by confidence descending. Ties keep their input order.
func (r Rules) FindDuplicates(candidate Candidate, existing []Contact) []DuplicateMatch {
	p := newProbe(candidate)

	var matches []DuplicateMatch
	for i := range existing {
		contact := &existing[i]
		acc := r.evaluate(p, contact)
		if len(acc.matchedFields) == 0 || acc.confidence < r.Threshold {
			continue
		}
		matches = append(matches, DuplicateMatch{
			Contact:       contact,
			MatchType:     acc.matchType,
			Confidence:    acc.confidence,
			MatchedFields: acc.matchedFields,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})

	return matches
}

// IsDefiniteDuplicate returns the first existing contact sharing the candidate's
// email or phone number, or nil. Name similarity is never considered.
func IsDefiniteDuplicate(candidate Candidate, existing []Contact) *Contact {
	p := newProbe(candidate)
	for i := range existing {
		contact := &existing[i]
		if p.emailMatches(contact) || p.phoneMatches(contact) {
			return contact
		}
	}
	return nil
}

// DuplicateWarning summarizes the strongest match for display. matches must be
// sorted as returned by FindDuplicates. Returns "" when there are none.
func DuplicateWarning(matches []DuplicateMatch) string {
	if len(matches) == 0 {
		return ""
	}

	top := matches[0]
	name := top.Contact.Name
	switch top.MatchType {
	case MatchTypeExactEmail:
		return "A contact with this email already exists: " + name
	case MatchTypeExactPhone:
		return "A contact with this phone number already exists: " + name
	default:
		return fmt.Sprintf("Potential duplicate found: %s (%d%% match on %s)",
			name, top.Confidence, strings.Join(top.MatchedFields, ", "))
	}
}
