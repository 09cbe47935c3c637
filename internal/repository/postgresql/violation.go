package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/resto-ops/backoffice-go/internal/domain/violation"
	"github.com/resto-ops/backoffice-go/internal/pkg/database"
)

type violationRepository struct {
	db *database.DB
}

func NewViolationRepository(db *database.DB) violation.ViolationRepository {
	return &violationRepository{db: db}
}

const violationColumns = `
	v.id, v.user_id, v.name, v.description, v.cost, v.waived,
	v.penalty_submitted, v.penalty_photo_urls, v.created_by,
	v.created_at, v.updated_at, u.name
`

// Create implements violation.ViolationRepository.
func (r *violationRepository) Create(ctx context.Context, v violation.Violation) (violation.Violation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO violations (id, user_id, name, description, cost, waived, penalty_submitted, penalty_photo_urls, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		v.ID, v.UserID, v.Name, v.Description, v.Cost,
		v.Waived, v.PenaltySubmitted, v.PenaltyPhotoURLs, v.CreatedBy,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return violation.Violation{}, fmt.Errorf("failed to create violation: %w", err)
	}

	return v, nil
}

// GetByID implements violation.ViolationRepository.
func (r *violationRepository) GetByID(ctx context.Context, id string) (violation.Violation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + violationColumns + `
		FROM violations v
		JOIN users u ON u.id = v.user_id
		WHERE v.id = $1
	`

	v, err := scanViolation(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return violation.Violation{}, violation.ErrViolationNotFound
		}
		return violation.Violation{}, fmt.Errorf("failed to get violation: %w", err)
	}

	return v, nil
}

// ListForMonth implements violation.ViolationRepository.
func (r *violationRepository) ListForMonth(ctx context.Context, monthStart time.Time) ([]violation.Violation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + violationColumns + `
		FROM violations v
		JOIN users u ON u.id = v.user_id
		WHERE v.created_at >= $1 AND v.created_at < $2
		ORDER BY v.created_at DESC
	`

	return r.list(ctx, q, query, monthStart, monthStart.AddDate(0, 1, 0))
}

// ListForUser implements violation.ViolationRepository.
func (r *violationRepository) ListForUser(ctx context.Context, userID string) ([]violation.Violation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + violationColumns + `
		FROM violations v
		JOIN users u ON u.id = v.user_id
		WHERE v.user_id = $1
		ORDER BY v.created_at DESC
	`

	return r.list(ctx, q, query, userID)
}

// Update implements violation.ViolationRepository.
func (r *violationRepository) Update(ctx context.Context, v violation.Violation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE violations
		SET name = $2, description = $3, cost = $4, waived = $5,
			penalty_submitted = $6, penalty_photo_urls = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		v.ID, v.Name, v.Description, v.Cost, v.Waived,
		v.PenaltySubmitted, v.PenaltyPhotoURLs,
	)
	if err != nil {
		return fmt.Errorf("failed to update violation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return violation.ErrViolationNotFound
	}

	return nil
}

func (r *violationRepository) list(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]violation.Violation, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	defer rows.Close()

	var violations []violation.Violation
	for rows.Next() {
		v, err := scanViolation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		violations = append(violations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate violations: %w", err)
	}

	return violations, nil
}

func scanViolation(row pgx.Row) (violation.Violation, error) {
	var v violation.Violation
	err := row.Scan(
		&v.ID, &v.UserID, &v.Name, &v.Description, &v.Cost, &v.Waived,
		&v.PenaltySubmitted, &v.PenaltyPhotoURLs, &v.CreatedBy,
		&v.CreatedAt, &v.UpdatedAt, &v.UserName,
	)
	if err != nil {
		return violation.Violation{}, err
	}
	return v, nil
}
