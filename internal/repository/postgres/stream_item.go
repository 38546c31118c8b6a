package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BloggingApp/community-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type streamItemRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func newStreamItemRepo(db *pgxpool.Pool, logger *zap.Logger) StreamItem {
	return &streamItemRepo{
		db:     db,
		logger: logger,
	}
}

func (r *streamItemRepo) FindByStreamable(ctx context.Context, siteID int64, target model.StreamTarget) ([]*model.StreamItem, error) {
	rows, err := conn(ctx, r.db).Query(
		ctx,
		`SELECT s.id, s.site_id, s.person_id, s.streamable_type, s.streamable_id, s.context, s.created_at, s.updated_at
		FROM stream_items s
		WHERE s.site_id = $1 AND s.streamable_type = $2 AND s.streamable_id = $3
		ORDER BY s.id`,
		siteID,
		target.Type,
		target.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*model.StreamItem
	for rows.Next() {
		var (
			item        model.StreamItem
			contextJSON []byte
		)
		if err := rows.Scan(
			&item.ID,
			&item.SiteID,
			&item.PersonID,
			&item.StreamableType,
			&item.StreamableID,
			&contextJSON,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if len(contextJSON) > 0 {
			if err := json.Unmarshal(contextJSON, &item.Context); err != nil {
				r.logger.Sugar().Errorf("failed to decode context of stream item(%d): %s", item.ID, err.Error())
				return nil, fmt.Errorf("decode stream item %d context: %w", item.ID, err)
			}
		}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *streamItemRepo) SaveContext(ctx context.Context, item *model.StreamItem) error {
	contextJSON, err := json.Marshal(item.Context)
	if err != nil {
		return fmt.Errorf("encode stream item %d context: %w", item.ID, err)
	}

	item.UpdatedAt = dbNow()
	tag, err := conn(ctx, r.db).Exec(
		ctx,
		"UPDATE stream_items SET context = $1, updated_at = $2 WHERE site_id = $3 AND id = $4",
		contextJSON,
		item.UpdatedAt,
		item.SiteID,
		item.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStreamItemNotFound
	}

	return nil
}
