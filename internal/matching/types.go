package matching

const maxConfidence = 100

// MatchType classifies the strongest signal behind a duplicate match.
type MatchType string

const (
	MatchTypeExactEmail   MatchType = "exact_email"
	MatchTypeExactPhone   MatchType = "exact_phone"
	MatchTypeSimilarName  MatchType = "similar_name"
	MatchTypePartialMatch MatchType = "partial_match"
)

// Matched field names reported in DuplicateMatch.MatchedFields.
const (
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldName        = "name"
	FieldEmailDomain = "email_domain"
)

// Contact is an existing contact record as seen by the matcher.
// Email and Phone are nil when the record has none.
type Contact struct {
	ID    string
	Name  string
	Email *string
	Phone *string
}

// Candidate is an incoming contact checked against existing ones.
type Candidate struct {
	Name  string
	Email string
	Phone *string
}

// DuplicateMatch describes one existing contact that probably duplicates the candidate.
type DuplicateMatch struct {
	// Contact points into the slice passed to the matcher.
	Contact       *Contact
	MatchType     MatchType
	Confidence    int
	MatchedFields []string
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
