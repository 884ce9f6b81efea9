package services

import (
	"context"
	"fmt"
	"time"

	"github.com/adampresley/workshopadmin/pkg/models"
	"github.com/rfberaldo/sqlz"
)

type ActivityServicer interface {
	GetRecent(limit int) ([]models.Activity, error)
	Prune(cutoff time.Time) (int64, error)
	Record(result RemoveResult) error
}

type ActivityServiceConfig struct {
	DB *sqlz.DB
}

type ActivityService struct {
	db *sqlz.DB
}

func NewActivityService(config ActivityServiceConfig) ActivityService {
	return ActivityService{
		db: config.DB,
	}
}

func (s ActivityService) GetRecent(limit int) ([]models.Activity, error) {
	var (
		err error
	)

	result := []models.Activity{}

	if limit <= 0 {
		limit = 100
	}

	sql := `
SELECT
   a.id
   , a.created_at
   , a.entity
   , a.record_id
   , a.outcome
   , a.status_code
   , a.message
FROM activity AS a
ORDER BY a.id DESC
LIMIT ?
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &result, sql, limit); err != nil {
		return result, fmt.Errorf("error querying for recent activity: %w", err)
	}

	return result, nil
}

func (s ActivityService) Record(result RemoveResult) error {
	var (
		err error
	)

	sql := `
INSERT INTO activity (
   created_at
   , entity
   , record_id
   , outcome
   , status_code
   , message
) VALUES (?, ?, ?, ?, ?, ?)
`

	params := []any{
		time.Now().UTC(),
		result.Entity.Name,
		result.ID,
		string(result.Outcome),
		result.StatusCode,
		result.Notification().Message,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, params...); err != nil {
		return fmt.Errorf("error recording activity for %s %d: %w", result.Entity.Name, result.ID, err)
	}

	return nil
}

/*
Prune removes activity recorded before the cutoff and returns how many
entries were removed.
*/
func (s ActivityService) Prune(cutoff time.Time) (int64, error) {
	var (
		err error
	)

	sql := `
DELETE FROM activity
WHERE 1=1
   AND created_at < ?
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	result, err := s.db.Exec(ctx, sql, cutoff.UTC())

	if err != nil {
		return 0, fmt.Errorf("error pruning activity older than %s: %w", cutoff.Format(time.RFC3339), err)
	}

	return result.RowsAffected()
}
