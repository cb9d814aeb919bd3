package service

import (
	"context"
	"errors"
	"testing"

	"crm-dedupe/internal/db"
	"crm-dedupe/internal/matching"
	"crm-dedupe/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	check *DuplicateCheck
	err   error
	seen  []matching.Candidate
}

func (s *stubChecker) Check(ctx context.Context, candidate matching.Candidate) (*DuplicateCheck, error) {
	s.seen = append(s.seen, candidate)
	return s.check, s.err
}

func newContactServiceWithRepo(repo *fakeContactRepo, blockDefinite bool) *ContactService {
	duplicates := NewDuplicateService(repo, DuplicateServiceOptions{Rules: matching.DefaultRules})
	return NewContactService(repo, duplicates, blockDefinite)
}

func TestContactServiceCreateContact_NoDuplicates(t *testing.T) {
	repo := &fakeContactRepo{contacts: []repository.Contact{
		storedContact("Alice", "alice@example.com", ""),
	}}
	svc := newContactServiceWithRepo(repo, true)

	result, err := svc.CreateContact(context.Background(), repository.CreateContactRequest{
		FullName: "Bob",
		Email:    stringPtr("bob@other.org"),
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "Bob", result.Contact.FullName)
	assert.Empty(t, result.Matches)
	assert.Empty(t, result.Warning)
	assert.Len(t, repo.created, 1)
}

func TestContactServiceCreateContact_BlocksDefiniteDuplicate(t *testing.T) {
	alice := storedContact("Alice", "alice@example.com", "")
	repo := &fakeContactRepo{contacts: []repository.Contact{alice}}
	svc := newContactServiceWithRepo(repo, true)

	result, err := svc.CreateContact(context.Background(), repository.CreateContactRequest{
		FullName: "Alice B",
		Email:    stringPtr("  ALICE@example.com "),
	}, false)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrDefiniteDuplicate)

	var dupErr *DuplicateError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, alice.ID.String(), dupErr.Existing.ID)
	assert.Equal(t, "A contact with this email already exists: Alice", err.Error())
	assert.Empty(t, repo.created)
}

func TestContactServiceCreateContact_Force(t *testing.T) {
	repo := &fakeContactRepo{contacts: []repository.Contact{
		storedContact("Alice", "alice@example.com", ""),
	}}
	svc := newContactServiceWithRepo(repo, true)

	result, err := svc.CreateContact(context.Background(), repository.CreateContactRequest{
		FullName: "Alice B",
		Email:    stringPtr("alice@example.com"),
	}, true)
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, matching.MatchTypeExactEmail, result.Matches[0].MatchType)
	assert.Equal(t, "A contact with this email already exists: Alice", result.Warning)
	assert.Len(t, repo.created, 1)
}

func TestContactServiceCreateContact_BlockingDisabled(t *testing.T) {
	repo := &fakeContactRepo{contacts: []repository.Contact{
		storedContact("Alice", "", "+1 (555) 123-4567"),
	}}
	svc := newContactServiceWithRepo(repo, false)

	result, err := svc.CreateContact(context.Background(), repository.CreateContactRequest{
		FullName: "Somebody",
		Phone:    stringPtr("555.123.4567"),
	}, false)
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, matching.MatchTypeExactPhone, result.Matches[0].MatchType)
	assert.Equal(t, 95, result.Matches[0].Confidence)
}

func TestContactServiceCreateContact_CleansRequest(t *testing.T) {
	checker := &stubChecker{check: &DuplicateCheck{}}
	repo := &fakeContactRepo{}
	svc := NewContactService(repo, checker, true)

	_, err := svc.CreateContact(context.Background(), repository.CreateContactRequest{
		FullName: "  Jane Doe ",
		Email:    stringPtr("   "),
		Phone:    stringPtr(" +1 (555) 123-4567 "),
		Company:  stringPtr(" Acme "),
	}, false)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, "Jane Doe", created.FullName)
	assert.Nil(t, created.Email)
	require.NotNil(t, created.Phone)
	assert.Equal(t, "+15551234567", *created.Phone)
	require.NotNil(t, created.Company)
	assert.Equal(t, "Acme", *created.Company)

	require.Len(t, checker.seen, 1)
	assert.Equal(t, "Jane Doe", checker.seen[0].Name)
	assert.Empty(t, checker.seen[0].Email)
}

func TestContactServiceCreateContact_CheckError(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewContactService(repo, &stubChecker{err: assert.AnError}, true)

	_, err := svc.CreateContact(context.Background(), repository.CreateContactRequest{FullName: "Jane"}, false)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, repo.created)
}

func TestContactServiceListAndDelete(t *testing.T) {
	first := storedContact("A", "", "")
	repo := &fakeContactRepo{contacts: []repository.Contact{first, storedContact("B", "", "")}}
	svc := newContactServiceWithRepo(repo, true)

	contacts, total, err := svc.ListContactsPage(context.Background(), repository.ListContactsParams{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
	assert.Equal(t, int64(2), total)

	require.NoError(t, svc.DeleteContact(context.Background(), first.ID))
	_, err = svc.GetContact(context.Background(), first.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteContact(context.Background(), uuid.New()), db.ErrNotFound)
}

func TestCandidateFromRequest(t *testing.T) {
	phone := "555"
	candidate := CandidateFromRequest(repository.CreateContactRequest{FullName: "X", Email: stringPtr("x@y.z"), Phone: &phone})
	assert.Equal(t, matching.Candidate{Name: "X", Email: "x@y.z", Phone: &phone}, candidate)

	assert.Empty(t, CandidateFromRequest(repository.CreateContactRequest{FullName: "X"}).Email)
}
