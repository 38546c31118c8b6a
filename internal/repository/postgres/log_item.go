package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BloggingApp/community-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type logItemRepo struct {
	db *pgxpool.Pool
}

func newLogItemRepo(db *pgxpool.Pool) LogItem {
	return &logItemRepo{
		db: db,
	}
}

func (r *logItemRepo) Create(ctx context.Context, item model.LogItem) (*model.LogItem, error) {
	changes, err := json.Marshal(item.ObjectChanges)
	if err != nil {
		return nil, fmt.Errorf("encode log item changes: %w", err)
	}

	item.CreatedAt = dbNow()
	if err := conn(ctx, r.db).QueryRow(
		ctx,
		`INSERT INTO log_items(site_id, person_id, loggable_type, loggable_id, action, object_changes, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		item.SiteID,
		item.PersonID,
		item.LoggableType,
		item.LoggableID,
		string(item.Action),
		changes,
		item.CreatedAt,
	).Scan(&item.ID); err != nil {
		return nil, err
	}

	return &item, nil
}
