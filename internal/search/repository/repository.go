package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type SearchResult struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	Service      string
	Description  string
	RemarkHit    string
	MatchedField string
	Score        float32
	CreatedAt    time.Time
	Total        int64
}

// SearchLeads matches leads by contact fields, description and logged remarks.
// Direct field hits outrank remark-only hits.
func (r *Repository) SearchLeads(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	querySQL := `
		WITH matches AS (
			SELECT
				l.id, l.name, l.email, l.phone, l.service, l.description, l.created_at,
				CASE
					WHEN l.name ILIKE $1 THEN 'name'
					WHEN l.email ILIKE $1 THEN 'email'
					WHEN l.phone ILIKE $1 THEN 'phone'
					WHEN l.service ILIKE $1 THEN 'service'
					WHEN l.description ILIKE $1 THEN 'description'
					ELSE 'remarks'
				END AS matched_field,
				(CASE WHEN l.name ILIKE $1 THEN 4 ELSE 0 END
					+ CASE WHEN l.email ILIKE $1 OR l.phone ILIKE $1 THEN 3 ELSE 0 END
					+ CASE WHEN l.service ILIKE $1 THEN 2 ELSE 0 END
					+ CASE WHEN l.description ILIKE $1 THEN 1 ELSE 0 END) AS field_score,
				(
					SELECT a.remarks FROM lead_actions a
					WHERE a.lead_id = l.id AND a.remarks ILIKE $1
					ORDER BY a.seq DESC
					LIMIT 1
				) AS remark_hit
			FROM leads l
		)
		SELECT
			id, name, email, phone, service, description, coalesce(remark_hit, ''), matched_field,
			(field_score + CASE WHEN remark_hit IS NOT NULL THEN 0.5 ELSE 0 END)::real AS rank,
			created_at,
			COUNT(*) OVER() AS total
		FROM matches
		WHERE field_score > 0 OR remark_hit IS NOT NULL
		ORDER BY rank DESC, created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, querySQL, ContainsPattern(query), limit)
	if err != nil {
		return nil, fmt.Errorf("lead search query failed: %w", err)
	}
	defer rows.Close()

	items := make([]SearchResult, 0)
	for rows.Next() {
		var item SearchResult
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Email,
			&item.Phone,
			&item.Service,
			&item.Description,
			&item.RemarkHit,
			&item.MatchedField,
			&item.Score,
			&item.CreatedAt,
			&item.Total,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns user input into an ILIKE substring pattern with
// wildcards in the input matched literally.
func ContainsPattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}
