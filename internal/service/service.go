package service

import (
	"context"
	"time"

	"github.com/BloggingApp/community-service/internal/dto"
	"github.com/BloggingApp/community-service/internal/metrics"
	"github.com/BloggingApp/community-service/internal/model"
	"github.com/BloggingApp/community-service/internal/repository"
	"go.uber.org/zap"
)

const (
	CACHE_TTL = time.Hour
	// A refill racing a sync invalidation can cache a stale stream; the short
	// TTL bounds how long it is served.
	STREAM_CACHE_TTL = time.Minute
)

type Comment interface {
	Create(ctx context.Context, siteID int64, personID int64, input dto.CreateCommentDto) (*model.Comment, error)
	FindByID(ctx context.Context, siteID int64, id int64) (*model.FullComment, error)
	Update(ctx context.Context, siteID int64, id int64, personID int64, input dto.EditCommentDto) (*model.Comment, error)
	Delete(ctx context.Context, siteID int64, id int64, personID int64) error
}

type StreamSync interface {
	OnCreate(ctx context.Context, comment model.Comment) error
	OnDestroy(ctx context.Context, comment model.Comment) error
}

type Stream interface {
	FindStreamItems(ctx context.Context, siteID int64, target model.StreamTarget) ([]*model.StreamItem, error)
}

type ActivityLog interface {
	Record(ctx context.Context, comment model.Comment, action model.LogAction, changes map[string]any) error
}

type Person interface {
	FindByID(ctx context.Context, siteID int64, id int64) (*model.Person, error)
}

type Service struct {
	Comment
	StreamSync
	Stream
	ActivityLog
	Person
}

func New(logger *zap.Logger, repo *repository.Repository, m *metrics.Metrics) *Service {
	streamSync := newStreamSyncService(logger, repo, m)
	activityLog := newActivityLogService(logger, repo)

	return &Service{
		Comment:     newCommentService(logger, repo, streamSync, activityLog),
		StreamSync:  streamSync,
		Stream:      newStreamService(logger, repo),
		ActivityLog: activityLog,
		Person:      newPersonService(logger, repo),
	}
}
