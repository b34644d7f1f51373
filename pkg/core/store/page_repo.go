package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"financial_analyzer/pkg/core/ingest"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool the repository needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Schema assumption:
// CREATE TABLE IF NOT EXISTS company_pages (
//   slug TEXT PRIMARY KEY,
//   html TEXT NOT NULL,
//   fetched_at TIMESTAMPTZ
// );
const selectPageSQL = `SELECT html FROM company_pages WHERE upper(slug) = $1`

// PageRepo serves company pages stored in the company_pages table.
type PageRepo struct {
	db Querier
}

// NewPageRepo creates a repository over db.
func NewPageRepo(db Querier) *PageRepo {
	return &PageRepo{db: db}
}

// FetchDocument implements pipeline.DocumentSource. A missing row is
// reported as a 404 FetchError.
func (r *PageRepo) FetchDocument(ctx context.Context, companyID string) (string, error) {
	if r.db == nil {
		return "", &ingest.FetchError{CompanyID: companyID, Err: errors.New("database pool not configured")}
	}

	var html string
	err := r.db.QueryRow(ctx, selectPageSQL, companyID).Scan(&html)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &ingest.FetchError{CompanyID: companyID, StatusCode: http.StatusNotFound}
		}
		return "", &ingest.FetchError{CompanyID: companyID, Err: fmt.Errorf("failed to load page: %w", err)}
	}
	return html, nil
}
