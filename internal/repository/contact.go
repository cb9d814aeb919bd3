package repository

import (
	"context"
	"errors"
	"time"

	"crm-dedupe/internal/db"
	"crm-dedupe/internal/matching"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ContactRepository struct {
	queries db.Querier
}

func NewContactRepository(queries db.Querier) *ContactRepository {
	return &ContactRepository{queries: queries}
}

// Contact represents a contact entity
type Contact struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Company   *string   `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateContactRequest represents the request to create a contact
type CreateContactRequest struct {
	FullName string  `json:"full_name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Company  *string `json:"company,omitempty"`
}

// ListContactsParams represents parameters for listing contacts
type ListContactsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

// MatchCandidatesParams narrows the contacts loaded for duplicate matching.
// Empty fields are ignored.
type MatchCandidatesParams struct {
	EmailDomain string
	PhoneTail   string
	Limit       int32
}

// GetContact retrieves a contact by ID
func (r *ContactRepository) GetContact(ctx context.Context, id uuid.UUID) (*Contact, error) {
	dbContact, err := r.queries.GetContact(ctx, uuidToPgUUID(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, err
	}

	contact := convertDbContact(dbContact)
	return &contact, nil
}

// ListContacts retrieves a paginated list of contacts
func (r *ContactRepository) ListContacts(ctx context.Context, params ListContactsParams) ([]Contact, error) {
	dbContacts, err := r.queries.ListContacts(ctx, db.ListContactsParams{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return nil, err
	}

	return convertDbContacts(dbContacts), nil
}

// ListContactsForMatching loads up to limit contacts, oldest first, for
// duplicate detection.
func (r *ContactRepository) ListContactsForMatching(ctx context.Context, limit int32) ([]Contact, error) {
	dbContacts, err := r.queries.ListContactsForMatching(ctx, limit)
	if err != nil {
		return nil, err
	}

	return convertDbContacts(dbContacts), nil
}

// ListMatchCandidates loads contacts sharing the email domain or phone tail.
func (r *ContactRepository) ListMatchCandidates(ctx context.Context, params MatchCandidatesParams) ([]Contact, error) {
	dbContacts, err := r.queries.ListContactsByDomainOrPhoneTail(ctx, db.ListContactsByDomainOrPhoneTailParams{
		Domain:    params.EmailDomain,
		PhoneTail: params.PhoneTail,
		Limit:     params.Limit,
	})
	if err != nil {
		return nil, err
	}

	return convertDbContacts(dbContacts), nil
}

// CreateContact creates a new contact
func (r *ContactRepository) CreateContact(ctx context.Context, req CreateContactRequest) (*Contact, error) {
	dbContact, err := r.queries.CreateContact(ctx, db.CreateContactParams{
		FullName: req.FullName,
		Email:    stringToPgText(req.Email),
		Phone:    stringToPgText(req.Phone),
		Company:  stringToPgText(req.Company),
	})
	if err != nil {
		return nil, err
	}

	contact := convertDbContact(dbContact)
	return &contact, nil
}

// SoftDeleteContact soft deletes a contact
func (r *ContactRepository) SoftDeleteContact(ctx context.Context, id uuid.UUID) error {
	affected, err := r.queries.SoftDeleteContact(ctx, uuidToPgUUID(id))
	if err != nil {
		return err
	}
	if affected == 0 {
		return db.ErrNotFound
	}
	return nil
}

// CountContacts returns the total number of active contacts
func (r *ContactRepository) CountContacts(ctx context.Context) (int64, error) {
	return r.queries.CountContacts(ctx)
}

// ToMatchingContact converts a stored contact into the matcher's view of it.
func (c Contact) ToMatchingContact() matching.Contact {
	return matching.Contact{
		ID:    c.ID.String(),
		Name:  c.FullName,
		Email: c.Email,
		Phone: c.Phone,
	}
}

// ToMatchingContacts converts stored contacts for the matcher, keeping order.
func ToMatchingContacts(contacts []Contact) []matching.Contact {
	out := make([]matching.Contact, len(contacts))
	for i, c := range contacts {
		out[i] = c.ToMatchingContact()
	}
	return out
}
