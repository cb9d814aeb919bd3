package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactAsCandidate(t *testing.T) {
	c := Contact{ID: "1", Name: "Ann", Phone: strPtr("555")}
	assert.Equal(t, Candidate{Name: "Ann", Email: "", Phone: c.Phone}, c.AsCandidate())

	c.Email = strPtr("ann@example.com")
	assert.Equal(t, "ann@example.com", c.AsCandidate().Email)
}

func TestFindDuplicatePairs(t *testing.T) {
	contacts := []Contact{
		contact("a", "John Smith", "john@example.com"),
		contact("b", "Unrelated", "someone@else.org"),
		contact("c", "J. Smith", "JOHN@example.com"),
		contact("d", "John Smyth", "jsmyth@example.com"),
	}

	pairs := DefaultRules.FindDuplicatePairs(contacts)
	require.Len(t, pairs, 2)

	assert.Equal(t, "c", pairs[0].Contact.ID)
	assert.Equal(t, "a", pairs[0].Match.Contact.ID)
	assert.Equal(t, MatchTypeExactEmail, pairs[0].Match.MatchType)

	assert.Equal(t, "d", pairs[1].Contact.ID)
	assert.Equal(t, "a", pairs[1].Match.Contact.ID)
	assert.Equal(t, MatchTypePartialMatch, pairs[1].Match.MatchType)
	assert.Equal(t, 90, pairs[1].Match.Confidence)
}

func TestFindDuplicatePairs_TooFewContacts(t *testing.T) {
	assert.Empty(t, DefaultRules.FindDuplicatePairs(nil))
	assert.Empty(t, DefaultRules.FindDuplicatePairs([]Contact{contact("a", "A", "a@a.com")}))
}
