package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type Querier interface {
	CountContacts(ctx context.Context) (int64, error)
	CreateContact(ctx context.Context, arg CreateContactParams) (*Contact, error)
	GetContact(ctx context.Context, id pgtype.UUID) (*Contact, error)
	ListContacts(ctx context.Context, arg ListContactsParams) ([]*Contact, error)
	ListContactsForMatching(ctx context.Context, limit int32) ([]*Contact, error)
	ListContactsByDomainOrPhoneTail(ctx context.Context, arg ListContactsByDomainOrPhoneTailParams) ([]*Contact, error)
	SoftDeleteContact(ctx context.Context, id pgtype.UUID) (int64, error)
}

var _ Querier = (*Queries)(nil)
