package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Contact struct {
	ID        pgtype.UUID        `json:"id"`
	FullName  string             `json:"full_name"`
	Email     pgtype.Text        `json:"email"`
	Phone     pgtype.Text        `json:"phone"`
	Company   pgtype.Text        `json:"company"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
	DeletedAt pgtype.Timestamptz `json:"deleted_at"`
}
