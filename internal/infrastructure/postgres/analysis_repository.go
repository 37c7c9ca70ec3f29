package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bibbank/scamguard/internal/domain/model"
	"github.com/bibbank/scamguard/internal/domain/valueobject"
	pgpkg "github.com/bibbank/scamguard/pkg/postgres"
)

// AnalysisRepository implements port.AnalysisRepository using PostgreSQL.
type AnalysisRepository struct {
	db pgpkg.Querier
}

// NewAnalysisRepository creates a new PostgreSQL-backed analysis repository.
// db is usually a *pgxpool.Pool.
func NewAnalysisRepository(db pgpkg.Querier) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// redFlagRow is the JSONB element stored in analyses.red_flags.
type redFlagRow struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Excerpt     string `json:"excerpt"`
}

const selectColumns = `
	SELECT id, text, risk_score, red_flags, explanation, recommendation, created_at
	FROM analyses
`

// Save persists an analysis. Analyses are immutable, so a repeated ID is ignored.
func (r *AnalysisRepository) Save(ctx context.Context, analysis *model.Analysis) error {
	assessment := analysis.Assessment()

	redFlags, err := encodeRedFlags(assessment.RedFlags())
	if err != nil {
		return err
	}

	query := `
		INSERT INTO analyses (
			id, text, risk_score, risk_level, red_flags,
			explanation, recommendation, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	_, err = r.db.Exec(ctx, query,
		analysis.ID(),
		analysis.Text(),
		assessment.Score(),
		assessment.Level().String(),
		redFlags,
		assessment.Explanation(),
		assessment.Recommendation(),
		analysis.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

// FindByID retrieves an analysis by its unique identifier. It returns nil, nil
// when no row exists.
func (r *AnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Analysis, error) {
	analysis, err := scanAnalysis(r.db.QueryRow(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return analysis, nil
}

// ListRecent returns up to limit analyses, newest first.
func (r *AnalysisRepository) ListRecent(ctx context.Context, limit int) ([]*model.Analysis, error) {
	rows, err := r.db.Query(ctx, selectColumns+` ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	analyses := make([]*model.Analysis, 0)
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	return analyses, nil
}

// Statistics summarises every stored analysis.
func (r *AnalysisRepository) Statistics(ctx context.Context) (model.Statistics, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE risk_level = 'high'),
			COALESCE(SUM(risk_score), 0)
		FROM analyses
	`

	var total, scams, sum int64
	if err := r.db.QueryRow(ctx, query).Scan(&total, &scams, &sum); err != nil {
		return model.Statistics{}, fmt.Errorf("failed to query statistics: %w", err)
	}

	return model.NewStatistics(int(total), int(scams), sum), nil
}

// scanAnalysis reads one row in selectColumns order. pgx.ErrNoRows is
// returned unwrapped so callers can detect it.
func scanAnalysis(row pgx.Row) (*model.Analysis, error) {
	var (
		id             uuid.UUID
		text           string
		riskScore      int
		redFlagsRaw    []byte
		explanation    string
		recommendation string
		createdAt      time.Time
	)

	err := row.Scan(&id, &text, &riskScore, &redFlagsRaw, &explanation, &recommendation, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	redFlags, err := decodeRedFlags(redFlagsRaw)
	if err != nil {
		return nil, fmt.Errorf("analysis %s: %w", id, err)
	}

	// The stored risk_level is not read back; the level is re-derived from the score.
	assessment, err := valueobject.NewRiskAssessment(riskScore, redFlags, explanation, recommendation)
	if err != nil {
		return nil, fmt.Errorf("analysis %s: %w", id, err)
	}

	return model.Reconstruct(id, text, assessment, createdAt.UTC()), nil
}

func encodeRedFlags(flags []valueobject.RedFlag) ([]byte, error) {
	rows := make([]redFlagRow, 0, len(flags))
	for _, f := range flags {
		rows = append(rows, redFlagRow{
			Type:        f.Type,
			Description: f.Description,
			Severity:    f.Severity.String(),
			Excerpt:     f.Excerpt,
		})
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode red flags: %w", err)
	}
	return raw, nil
}

func decodeRedFlags(raw []byte) ([]valueobject.RedFlag, error) {
	var rows []redFlagRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode red flags: %w", err)
	}

	flags := make([]valueobject.RedFlag, 0, len(rows))
	for _, row := range rows {
		severity, err := valueobject.SeverityFromString(row.Severity)
		if err != nil {
			return nil, fmt.Errorf("failed to decode red flag %q: %w", row.Type, err)
		}
		flags = append(flags, valueobject.RedFlag{
			Type:        row.Type,
			Description: row.Description,
			Severity:    severity,
			Excerpt:     row.Excerpt,
		})
	}
	return flags, nil
}
