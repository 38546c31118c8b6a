package postgres

import (
	"context"

	"github.com/BloggingApp/community-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, siteID int64, id int64) (*model.Comment, error)
	FindWithAuthor(ctx context.Context, siteID int64, id int64) (*model.FullComment, error)
	UpdateText(ctx context.Context, siteID int64, id int64, text string) (*model.Comment, error)
	Delete(ctx context.Context, siteID int64, id int64) error
}

type Parent interface {
	FindName(ctx context.Context, siteID int64, parent model.Parent) (string, error)
	FindPictureAlbumID(ctx context.Context, siteID int64, pictureID int64) (int64, error)
}

type StreamItem interface {
	FindByStreamable(ctx context.Context, siteID int64, target model.StreamTarget) ([]*model.StreamItem, error)
	SaveContext(ctx context.Context, item *model.StreamItem) error
}

type LogItem interface {
	Create(ctx context.Context, item model.LogItem) (*model.LogItem, error)
}

type Person interface {
	FindByID(ctx context.Context, siteID int64, id int64) (*model.Person, error)
}

type PostgresRepository struct {
	Transactor
	Comment
	Parent
	StreamItem
	LogItem
	Person
}

func New(db *pgxpool.Pool, logger *zap.Logger) *PostgresRepository {
	return &PostgresRepository{
		Transactor: newTransactor(db),
		Comment:    newCommentRepo(db),
		Parent:     newParentRepo(db),
		StreamItem: newStreamItemRepo(db, logger),
		LogItem:    newLogItemRepo(db),
		Person:     newPersonRepo(db),
	}
}
