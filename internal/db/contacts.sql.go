package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const contactColumns = `id, full_name, email, phone, company, created_at, updated_at, deleted_at`

func scanContact(row pgx.Row) (*Contact, error) {
	var i Contact
	err := row.Scan(
		&i.ID,
		&i.FullName,
		&i.Email,
		&i.Phone,
		&i.Company,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func collectContacts(rows pgx.Rows) ([]*Contact, error) {
	defer rows.Close()
	var items []*Contact
	for rows.Next() {
		i, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countContacts = `-- name: CountContacts :one
SELECT COUNT(*) FROM contacts WHERE deleted_at IS NULL
`

func (q *Queries) CountContacts(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countContacts)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createContact = `-- name: CreateContact :one
INSERT INTO contacts (full_name, email, phone, company)
VALUES ($1, $2, $3, $4)
RETURNING ` + contactColumns

type CreateContactParams struct {
	FullName string      `json:"full_name"`
	Email    pgtype.Text `json:"email"`
	Phone    pgtype.Text `json:"phone"`
	Company  pgtype.Text `json:"company"`
}

func (q *Queries) CreateContact(ctx context.Context, arg CreateContactParams) (*Contact, error) {
	row := q.db.QueryRow(ctx, createContact,
		arg.FullName,
		arg.Email,
		arg.Phone,
		arg.Company,
	)
	return scanContact(row)
}

const getContact = `-- name: GetContact :one
SELECT ` + contactColumns + `
FROM contacts
WHERE id = $1 AND deleted_at IS NULL
`

func (q *Queries) GetContact(ctx context.Context, id pgtype.UUID) (*Contact, error) {
	row := q.db.QueryRow(ctx, getContact, id)
	return scanContact(row)
}

const listContacts = `-- name: ListContacts :many
SELECT ` + contactColumns + `
FROM contacts
WHERE deleted_at IS NULL
ORDER BY full_name ASC, id ASC
LIMIT $1 OFFSET $2
`

type ListContactsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListContacts(ctx context.Context, arg ListContactsParams) ([]*Contact, error) {
	rows, err := q.db.Query(ctx, listContacts, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

const listContactsForMatching = `-- name: ListContactsForMatching :many
SELECT ` + contactColumns + `
FROM contacts
WHERE deleted_at IS NULL
ORDER BY created_at ASC, id ASC
LIMIT $1
`

// ListContactsForMatching returns contacts oldest first so that matches with
// equal confidence rank the earliest record first.
func (q *Queries) ListContactsForMatching(ctx context.Context, limit int32) ([]*Contact, error) {
	rows, err := q.db.Query(ctx, listContactsForMatching, limit)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

const listContactsByDomainOrPhoneTail = `-- name: ListContactsByDomainOrPhoneTail :many
SELECT ` + contactColumns + `
FROM contacts
WHERE deleted_at IS NULL
  AND (
    ($1::text <> '' AND SPLIT_PART(LOWER(TRIM(email)), '@', 2) = $1::text)
    OR ($2::text <> '' AND RIGHT(REGEXP_REPLACE(phone, '\D', '', 'g'), 10) = $2::text)
  )
ORDER BY created_at ASC, id ASC
LIMIT $3
`

type ListContactsByDomainOrPhoneTailParams struct {
	Domain    string `json:"domain"`
	PhoneTail string `json:"phone_tail"`
	Limit     int32  `json:"limit"`
}

func (q *Queries) ListContactsByDomainOrPhoneTail(ctx context.Context, arg ListContactsByDomainOrPhoneTailParams) ([]*Contact, error) {
	rows, err := q.db.Query(ctx, listContactsByDomainOrPhoneTail, arg.Domain, arg.PhoneTail, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

const softDeleteContact = `-- name: SoftDeleteContact :execrows
UPDATE contacts
SET deleted_at = NOW(), updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
`

func (q *Queries) SoftDeleteContact(ctx context.Context, id pgtype.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, softDeleteContact, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
