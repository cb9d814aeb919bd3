package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"crm-dedupe/internal/logger"
	"crm-dedupe/internal/matching"
	"crm-dedupe/internal/repository"

	"github.com/google/uuid"
)

// DefaultMaxMatchContacts bounds how many stored contacts one check compares against.
const DefaultMaxMatchContacts = 5000

var ErrScanInProgress = errors.New("duplicate scan already in progress")

type contactLoader interface {
	ListContactsForMatching(ctx context.Context, limit int32) ([]repository.Contact, error)
	ListMatchCandidates(ctx context.Context, params repository.MatchCandidatesParams) ([]repository.Contact, error)
}

// DuplicateServiceOptions configures a DuplicateService.
type DuplicateServiceOptions struct {
	Rules matching.Rules
	// PrefilterByDomain restricts checks to contacts sharing the candidate's
	// email domain or phone tail. Exact matches are unaffected; similar names
	// under other domains are no longer found.
	PrefilterByDomain bool
	// MaxContacts bounds the contacts loaded per check or scan.
	MaxContacts int
}

// DuplicateCheck is the outcome of checking one candidate against the store.
type DuplicateCheck struct {
	Matches   []matching.DuplicateMatch
	Warning   string
	Definite  *matching.Contact
	// Compared is the number of stored contacts the candidate was checked against.
	Compared  int
	// Truncated is set when the contact limit was reached, so newer contacts
	// were not compared.
	Truncated bool
}

// ScanPair is one probable duplicate found by a store-wide scan.
type ScanPair struct {
	ContactID       string             `json:"contact_id"`
	ContactName     string             `json:"contact_name"`
	DuplicateOfID   string             `json:"duplicate_of_id"`
	DuplicateOfName string             `json:"duplicate_of_name"`
	MatchType       matching.MatchType `json:"match_type"`
	Confidence      int                `json:"confidence"`
	MatchedFields   []string           `json:"matched_fields"`
}

// ScanReport summarizes a store-wide duplicate scan.
type ScanReport struct {
	ID           uuid.UUID  `json:"id"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   time.Time  `json:"finished_at"`
	ContactCount int        `json:"contact_count"`
	Truncated    bool       `json:"truncated"`
	Pairs        []ScanPair `json:"pairs"`
}

// DuplicateService runs the duplicate matcher against stored contacts.
type DuplicateService struct {
	contacts    contactLoader
	rules       matching.Rules
	prefilter   bool
	maxContacts int

	mu         sync.Mutex
	scanning   bool
	latestScan *ScanReport
}

// NewDuplicateService creates a new duplicate service.
func NewDuplicateService(contacts contactLoader, opts DuplicateServiceOptions) *DuplicateService {
	if opts.MaxContacts <= 0 {
		opts.MaxContacts = DefaultMaxMatchContacts
	}
	return &DuplicateService{
		contacts:    contacts,
		rules:       opts.Rules,
		prefilter:   opts.PrefilterByDomain,
		maxContacts: opts.MaxContacts,
	}
}

// Rules returns the matcher rules in use.
func (s *DuplicateService) Rules() matching.Rules {
	return s.rules
}

// Check finds stored contacts that probably duplicate the candidate.
func (s *DuplicateService) Check(ctx context.Context, candidate matching.Candidate) (*DuplicateCheck, error) {
	return s.check(ctx, candidate, s.rules)
}

// CheckWithThreshold is Check with a caller-supplied reporting threshold.
func (s *DuplicateService) CheckWithThreshold(ctx context.Context, candidate matching.Candidate, threshold int) (*DuplicateCheck, error) {
	rules := s.rules.WithThreshold(threshold)
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return s.check(ctx, candidate, rules)
}

func (s *DuplicateService) check(ctx context.Context, candidate matching.Candidate, rules matching.Rules) (*DuplicateCheck, error) {
	existing, truncated, err := s.loadExisting(ctx, candidate)
	if err != nil {
		logger.Warn().Err(err).Str("name", candidate.Name).Msg("failed to load contacts for duplicate check")
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	result := evaluateCandidate(rules, candidate, existing)
	result.Truncated = truncated

	logger.Debug().
		Str("name", candidate.Name).
		Int("compared", result.Compared).
		Int("matches", len(result.Matches)).
		Bool("definite", result.Definite != nil).
		Msg("duplicate check completed")

	return result, nil
}

func evaluateCandidate(rules matching.Rules, candidate matching.Candidate, existing []matching.Contact) *DuplicateCheck {
	matches := rules.FindDuplicates(candidate, existing)
	return &DuplicateCheck{
		Matches:  matches,
		Warning:  matching.DuplicateWarning(matches),
		Definite: matching.IsDefiniteDuplicate(candidate, existing),
		Compared: len(existing),
	}
}

func (s *DuplicateService) loadExisting(ctx context.Context, candidate matching.Candidate) ([]matching.Contact, bool, error) {
	if s.prefilter {
		domain, _ := matching.EmailDomain(matching.NormalizeEmail(candidate.Email))
		var phoneTail string
		if candidate.Phone != nil {
			phoneTail = matching.NormalizePhone(*candidate.Phone)
		}
		if domain != "" || phoneTail != "" {
			contacts, err := s.contacts.ListMatchCandidates(ctx, repository.MatchCandidatesParams{
				EmailDomain: domain,
				PhoneTail:   phoneTail,
				Limit:       int32(s.maxContacts),
			})
			if err != nil {
				return nil, false, err
			}
			return repository.ToMatchingContacts(contacts), s.atLimit(len(contacts), "prefiltered duplicate check"), nil
		}
	}

	return s.loadForMatching(ctx, "duplicate check")
}

// loadForMatching loads stored contacts oldest first. The second result is
// true when the limit was reached.
func (s *DuplicateService) loadForMatching(ctx context.Context, purpose string) ([]matching.Contact, bool, error) {
	stored, err := s.contacts.ListContactsForMatching(ctx, int32(s.maxContacts))
	if err != nil {
		return nil, false, err
	}
	return repository.ToMatchingContacts(stored), s.atLimit(len(stored), purpose), nil
}

func (s *DuplicateService) atLimit(loaded int, purpose string) bool {
	if loaded < s.maxContacts {
		return false
	}
	logger.Warn().
		Int("limit", s.maxContacts).
		Str("purpose", purpose).
		Msg("contact limit reached, newer contacts were not compared")
	return true
}

// Scan compares every stored contact with the ones created before it and
// records the report as the latest scan.
func (s *DuplicateService) Scan(ctx context.Context) (*ScanReport, error) {
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		return nil, ErrScanInProgress
	}
	s.scanning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
	}()

	report := &ScanReport{
		ID:        uuid.New(),
		StartedAt: time.Now(),
	}

	contacts, truncated, err := s.loadForMatching(ctx, "duplicate scan")
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	report.ContactCount = len(contacts)
	report.Truncated = truncated

	for _, pair := range s.rules.FindDuplicatePairs(contacts) {
		report.Pairs = append(report.Pairs, ScanPair{
			ContactID:       pair.Contact.ID,
			ContactName:     pair.Contact.Name,
			DuplicateOfID:   pair.Match.Contact.ID,
			DuplicateOfName: pair.Match.Contact.Name,
			MatchType:       pair.Match.MatchType,
			Confidence:      pair.Match.Confidence,
			MatchedFields:   pair.Match.MatchedFields,
		})
	}
	report.FinishedAt = time.Now()

	s.mu.Lock()
	s.latestScan = report
	s.mu.Unlock()

	logger.Info().
		Str("scan_id", report.ID.String()).
		Int("contacts", report.ContactCount).
		Int("pairs", len(report.Pairs)).
		Dur("duration", report.FinishedAt.Sub(report.StartedAt)).
		Msg("duplicate scan completed")

	return report, nil
}

// LatestScan returns the most recent scan report, or nil if none has run.
func (s *DuplicateService) LatestScan() *ScanReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latestScan
}
