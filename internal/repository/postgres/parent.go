package postgres

import (
	"context"

	"github.com/BloggingApp/community-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// parentNameQueries selects the display name of each parent kind.
var parentNameQueries = map[model.ParentKind]string{
	model.ParentVerse:   "SELECT reference FROM verses WHERE site_id = $1 AND id = $2",
	model.ParentRecipe:  "SELECT title FROM recipes WHERE site_id = $1 AND id = $2",
	model.ParentNote:    "SELECT title FROM notes WHERE site_id = $1 AND id = $2",
	model.ParentPicture: "SELECT 'Picture ' || id::text FROM pictures WHERE site_id = $1 AND id = $2",
}

type parentRepo struct {
	db *pgxpool.Pool
}

func newParentRepo(db *pgxpool.Pool) Parent {
	return &parentRepo{
		db: db,
	}
}

func (r *parentRepo) FindName(ctx context.Context, siteID int64, parent model.Parent) (string, error) {
	query, ok := parentNameQueries[parent.Kind]
	if !ok {
		return "", ErrUnknownParentKind
	}

	var name string
	if err := conn(ctx, r.db).QueryRow(ctx, query, siteID, parent.ID).Scan(&name); err != nil {
		return "", err
	}

	return name, nil
}

func (r *parentRepo) FindPictureAlbumID(ctx context.Context, siteID int64, pictureID int64) (int64, error) {
	var albumID int64
	if err := conn(ctx, r.db).QueryRow(
		ctx,
		"SELECT album_id FROM pictures WHERE site_id = $1 AND id = $2",
		siteID,
		pictureID,
	).Scan(&albumID); err != nil {
		return 0, err
	}

	return albumID, nil
}
