package service

import (
	"context"
	"sync"

	"crm-dedupe/internal/db"
	"crm-dedupe/internal/repository"

	"github.com/google/uuid"
)

type fakeContactRepo struct {
	mu         sync.Mutex
	contacts   []repository.Contact
	err        error
	created    []repository.CreateContactRequest
	lastLimit  int32
	lastParams *repository.MatchCandidatesParams
	loadHook   func()
}

func (f *fakeContactRepo) ListContactsForMatching(ctx context.Context, limit int32) ([]repository.Contact, error) {
	if f.loadHook != nil {
		f.loadHook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return append([]repository.Contact(nil), f.contacts...), nil
}

func (f *fakeContactRepo) ListMatchCandidates(ctx context.Context, params repository.MatchCandidatesParams) ([]repository.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastParams = &params
	if f.err != nil {
		return nil, f.err
	}
	return append([]repository.Contact(nil), f.contacts...), nil
}

func (f *fakeContactRepo) GetContact(ctx context.Context, id uuid.UUID) (*repository.Contact, error) {
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			return &f.contacts[i], nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeContactRepo) ListContacts(ctx context.Context, params repository.ListContactsParams) ([]repository.Contact, error) {
	return f.contacts, f.err
}

func (f *fakeContactRepo) CountContacts(ctx context.Context) (int64, error) {
	return int64(len(f.contacts)), f.err
}

func (f *fakeContactRepo) CreateContact(ctx context.Context, req repository.CreateContactRequest) (*repository.Contact, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	contact := repository.Contact{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
	}
	f.contacts = append(f.contacts, contact)
	return &contact, nil
}

func (f *fakeContactRepo) SoftDeleteContact(ctx context.Context, id uuid.UUID) error {
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			f.contacts = append(f.contacts[:i], f.contacts[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func storedContact(name, email, phone string) repository.Contact {
	c := repository.Contact{ID: uuid.New(), FullName: name}
	if email != "" {
		c.Email = stringPtr(email)
	}
	if phone != "" {
		c.Phone = stringPtr(phone)
	}
	return c
}

func stringPtr(s string) *string {
	return &s
}
