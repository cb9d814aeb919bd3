package service

import (
	"context"
	"errors"
	"strings"

	"crm-dedupe/internal/logger"
	"crm-dedupe/internal/matching"
	"crm-dedupe/internal/repository"

	"github.com/google/uuid"
)

// ErrDefiniteDuplicate is matched by errors.Is for a *DuplicateError.
var ErrDefiniteDuplicate = errors.New("contact already exists")

// DuplicateError reports that a contact was not created because it shares an
// email address or phone number with an existing contact.
type DuplicateError struct {
	Existing *matching.Contact
	Warning  string
}

func (e *DuplicateError) Error() string {
	if e.Warning != "" {
		return e.Warning
	}
	return ErrDefiniteDuplicate.Error()
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDefiniteDuplicate
}

type contactStore interface {
	GetContact(ctx context.Context, id uuid.UUID) (*repository.Contact, error)
	ListContacts(ctx context.Context, params repository.ListContactsParams) ([]repository.Contact, error)
	CountContacts(ctx context.Context) (int64, error)
	CreateContact(ctx context.Context, req repository.CreateContactRequest) (*repository.Contact, error)
	SoftDeleteContact(ctx context.Context, id uuid.UUID) error
}

type duplicateChecker interface {
	Check(ctx context.Context, candidate matching.Candidate) (*DuplicateCheck, error)
}

// CreateContactResult is a created contact plus any advisory duplicate matches.
type CreateContactResult struct {
	Contact *repository.Contact
	Matches []matching.DuplicateMatch
	Warning string
}

type ContactService struct {
	contacts      contactStore
	duplicates    duplicateChecker
	blockDefinite bool
}

func NewContactService(contacts contactStore, duplicates duplicateChecker, blockDefinite bool) *ContactService {
	return &ContactService{
		contacts:      contacts,
		duplicates:    duplicates,
		blockDefinite: blockDefinite,
	}
}

func (s *ContactService) GetContact(ctx context.Context, id uuid.UUID) (*repository.Contact, error) {
	return s.contacts.GetContact(ctx, id)
}

func (s *ContactService) ListContactsPage(ctx context.Context, params repository.ListContactsParams) ([]repository.Contact, int64, error) {
	contacts, err := s.contacts.ListContacts(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.contacts.CountContacts(ctx)
	if err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

func (s *ContactService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return s.contacts.SoftDeleteContact(ctx, id)
}

// CreateContact stores a new contact after checking it for duplicates. A
// definite duplicate is rejected with a *DuplicateError unless force is set
// or blocking is disabled; weaker matches are returned alongside the contact.
func (s *ContactService) CreateContact(ctx context.Context, req repository.CreateContactRequest, force bool) (*CreateContactResult, error) {
	req = cleanCreateRequest(req)

	check, err := s.duplicates.Check(ctx, CandidateFromRequest(req))
	if err != nil {
		return nil, err
	}

	if check.Definite != nil && s.blockDefinite && !force {
		logger.Info().
			Str("name", req.FullName).
			Str("existing_id", check.Definite.ID).
			Msg("rejected definite duplicate contact")
		return nil, &DuplicateError{Existing: check.Definite, Warning: check.Warning}
	}

	contact, err := s.contacts.CreateContact(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(check.Matches) > 0 {
		logger.Info().
			Str("contact_id", contact.ID.String()).
			Int("matches", len(check.Matches)).
			Bool("forced", force).
			Msg("created contact with possible duplicates")
	}

	return &CreateContactResult{
		Contact: contact,
		Matches: check.Matches,
		Warning: check.Warning,
	}, nil
}

// CandidateFromRequest builds the matcher's view of a contact about to be created.
func CandidateFromRequest(req repository.CreateContactRequest) matching.Candidate {
	candidate := matching.Candidate{
		Name:  req.FullName,
		Phone: req.Phone,
	}
	if req.Email != nil {
		candidate.Email = *req.Email
	}
	return candidate
}

func cleanCreateRequest(req repository.CreateContactRequest) repository.CreateContactRequest {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = cleanOptional(req.Email, strings.TrimSpace)
	req.Phone = cleanOptional(req.Phone, matching.NormalizePhoneLoose)
	req.Company = cleanOptional(req.Company, strings.TrimSpace)
	return req
}

func cleanOptional(value *string, clean func(string) string) *string {
	if value == nil {
		return nil
	}
	cleaned := clean(*value)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
