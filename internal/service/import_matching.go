package service

import (
	"context"
	"fmt"

	"crm-dedupe/internal/logger"
	"crm-dedupe/internal/matching"
)

// ImportDecision is the suggested handling of one import row.
type ImportDecision string

const (
	ImportDecisionCreate ImportDecision = "create"
	ImportDecisionReview ImportDecision = "review"
	ImportDecisionSkip   ImportDecision = "skip"
)

// importRowIDPrefix marks contacts that are earlier rows of the same import.
const importRowIDPrefix = "import-row:"

// ImportRowResult describes the duplicate status of one import row.
type ImportRowResult struct {
	Index       int
	Candidate   matching.Candidate
	Decision    ImportDecision
	Matches     []matching.DuplicateMatch
	Warning     string
	DuplicateOf *matching.Contact
}

// ImportPreview is the per-row outcome of checking an import batch.
type ImportPreview struct {
	Rows     []ImportRowResult
	Create   int
	Review   int
	Skip      int
	Compared  int
	Truncated bool
}

// ImportRowID returns the contact ID used for an earlier row of the same import.
func ImportRowID(index int) string {
	return fmt.Sprintf("%s%d", importRowIDPrefix, index)
}

// PreviewImport checks each row against the stored contacts and the rows
// before it in the batch. Exact email or phone matches are skipped, other
// matches are flagged for review.
func (s *DuplicateService) PreviewImport(ctx context.Context, rows []matching.Candidate) (*ImportPreview, error) {
	stored, truncated, err := s.loadForMatching(ctx, "import preview")
	if err != nil {
		logger.Warn().Err(err).Int("rows", len(rows)).Msg("failed to load contacts for import preview")
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	preview := &ImportPreview{
		Rows:      make([]ImportRowResult, 0, len(rows)),
		Compared:  len(stored),
		Truncated: truncated,
	}
	previewRows(s.rules, stored, rows, preview)
	return preview, nil
}

func previewRows(rules matching.Rules, pool []matching.Contact, rows []matching.Candidate, preview *ImportPreview) {
	for i, row := range rows {
		check := evaluateCandidate(rules, row, pool)

		result := ImportRowResult{
			Index:     i,
			Candidate: row,
			Matches:   check.Matches,
			Warning:   check.Warning,
		}

		switch {
		case check.Definite != nil:
			result.Decision = ImportDecisionSkip
			result.DuplicateOf = check.Definite
			preview.Skip++
		case len(check.Matches) > 0:
			result.Decision = ImportDecisionReview
			preview.Review++
		default:
			result.Decision = ImportDecisionCreate
			preview.Create++
		}
		preview.Rows = append(preview.Rows, result)

		if result.Decision != ImportDecisionSkip {
			email := row.Email
			pool = append(pool, matching.Contact{
				ID:    ImportRowID(i),
				Name:  row.Name,
				Email: &email,
				Phone: row.Phone,
			})
		}
	}

	logger.Info().
		Int("rows", len(rows)).
		Int("create", preview.Create).
		Int("review", preview.Review).
		Int("skip", preview.Skip).
		Msg("import preview completed")
}
