package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crm-dedupe/internal/api/handlers"
	"crm-dedupe/internal/config"
	"crm-dedupe/internal/db"
	"crm-dedupe/internal/health"
	"crm-dedupe/internal/matching"
	"crm-dedupe/internal/repository"
	"crm-dedupe/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryContacts is an in-memory contact store for exercising the full stack.
type memoryContacts struct {
	contacts []repository.Contact
}

func (m *memoryContacts) ListContactsForMatching(ctx context.Context, limit int32) ([]repository.Contact, error) {
	return m.contacts, nil
}

func (m *memoryContacts) ListMatchCandidates(ctx context.Context, params repository.MatchCandidatesParams) ([]repository.Contact, error) {
	return m.contacts, nil
}

func (m *memoryContacts) GetContact(ctx context.Context, id uuid.UUID) (*repository.Contact, error) {
	for i := range m.contacts {
		if m.contacts[i].ID == id {
			return &m.contacts[i], nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memoryContacts) ListContacts(ctx context.Context, params repository.ListContactsParams) ([]repository.Contact, error) {
	return m.contacts, nil
}

func (m *memoryContacts) CountContacts(ctx context.Context) (int64, error) {
	return int64(len(m.contacts)), nil
}

func (m *memoryContacts) CreateContact(ctx context.Context, req repository.CreateContactRequest) (*repository.Contact, error) {
	contact := repository.Contact{ID: uuid.New(), FullName: req.FullName, Email: req.Email, Phone: req.Phone, Company: req.Company}
	m.contacts = append(m.contacts, contact)
	return &contact, nil
}

func (m *memoryContacts) SoftDeleteContact(ctx context.Context, id uuid.UUID) error {
	return nil
}

type okPinger struct{}

func (okPinger) HealthCheck(ctx context.Context) error { return nil }

func newTestServer(t *testing.T) (*gin.Engine, *memoryContacts) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memoryContacts{}
	duplicates := service.NewDuplicateService(store, service.DuplicateServiceOptions{Rules: matching.DefaultRules})
	contacts := service.NewContactService(store, duplicates, true)

	router := setupRouter(config.TestConfig(), routerDeps{
		contacts:   handlers.NewContactHandler(contacts),
		duplicates: handlers.NewDuplicateHandler(duplicates),
		health:     health.NewHealthChecker(okPinger{}, config.DefaultHealthCheckTimeout).Handler,
	})
	return router, store
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_CreateThenDuplicateFlow(t *testing.T) {
	router, store := newTestServer(t)

	w := post(router, "/api/v1/contacts", `{"full_name":"John Smith","email":"john@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = post(router, "/api/v1/contacts/duplicates/check", `{"name":"John Smyth","email":"different@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var check struct {
		Data handlers.CheckDuplicatesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))
	require.Len(t, check.Data.Matches, 1)
	assert.Equal(t, 90, check.Data.Matches[0].Confidence)
	assert.Equal(t, "partial_match", check.Data.Matches[0].MatchType)
	assert.Equal(t, []string{"name", "email_domain"}, check.Data.Matches[0].MatchedFields)

	w = post(router, "/api/v1/contacts", `{"full_name":"Johnny","email":"JOHN@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, store.contacts, 1)

	w = post(router, "/api/v1/contacts?force=true", `{"full_name":"Johnny","email":"JOHN@example.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, store.contacts, 2)

	w = post(router, "/api/v1/duplicates/scan", ``)
	require.Equal(t, http.StatusOK, w.Code)
	var scan struct {
		Data service.ScanReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scan))
	require.Len(t, scan.Data.Pairs, 1)
	assert.Equal(t, matching.MatchTypeExactEmail, scan.Data.Pairs[0].MatchType)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/duplicates/scan/latest", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
