package postgresql

import (
	"context"
	"fmt"

	"github.com/resto-ops/backoffice-go/internal/domain/penalty"
	"github.com/resto-ops/backoffice-go/internal/pkg/database"
)

type applicationLog struct {
	db *database.DB
}

func NewApplicationLog(db *database.DB) penalty.ApplicationLog {
	return &applicationLog{db: db}
}

// Claim implements penalty.ApplicationLog. The insert either takes the key or
// hits the primary key and reports it as already claimed, so concurrent double
// submits race on the database rather than in memory.
func (r *applicationLog) Claim(ctx context.Context, key string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO penalty_applications (key)
		VALUES ($1)
		ON CONFLICT (key) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, key)
	if err != nil {
		return false, fmt.Errorf("failed to claim penalty application: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
