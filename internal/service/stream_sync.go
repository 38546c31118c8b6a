package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/BloggingApp/community-service/internal/metrics"
	"github.com/BloggingApp/community-service/internal/model"
	"github.com/BloggingApp/community-service/internal/repository"
	"github.com/BloggingApp/community-service/internal/repository/redisrepo"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SyncError reports the stream item a synchronizer run stopped at. Items
// handled before it keep their new context.
type SyncError struct {
	Op           string
	StreamItemID int64
	Err          error
}

func (e *SyncError) Error() string {
	if e.StreamItemID == 0 {
		return fmt.Sprintf("stream sync on %s: %s", e.Op, e.Err.Error())
	}
	return fmt.Sprintf("stream sync on %s: stream item(%d): %s", e.Op, e.StreamItemID, e.Err.Error())
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

type streamSyncService struct {
	logger  *zap.Logger
	repo    *repository.Repository
	metrics *metrics.Metrics
}

func newStreamSyncService(logger *zap.Logger, repo *repository.Repository, m *metrics.Metrics) StreamSync {
	return &streamSyncService{
		logger:  logger,
		repo:    repo,
		metrics: m,
	}
}

// OnCreate appends the comment's summary to every stream item of its parent.
// Album items only take the comment when they list the picture.
func (s *streamSyncService) OnCreate(ctx context.Context, comment model.Comment) error {
	summary := comment.Summary()
	return s.sync(ctx, metrics.OpCreate, comment, func(item *model.StreamItem) bool {
		if item.StreamableType == model.StreamableAlbum && !item.Context.HasPicture(comment.Parent.ID) {
			s.metrics.RecordSkipped()
			return false
		}
		item.Context = item.Context.WithComment(summary)
		return true
	})
}

// OnDestroy removes the comment's summary from every stream item of its parent.
func (s *streamSyncService) OnDestroy(ctx context.Context, comment model.Comment) error {
	return s.sync(ctx, metrics.OpDestroy, comment, func(item *model.StreamItem) bool {
		item.Context = item.Context.WithoutComment(comment.ID)
		return true
	})
}

func (s *streamSyncService) sync(ctx context.Context, op string, comment model.Comment, apply func(item *model.StreamItem) bool) error {
	if comment.Parent.IsZero() {
		return nil
	}

	target, ok, err := s.target(ctx, comment)
	if err != nil {
		s.metrics.RecordFailure(op)
		return &SyncError{Op: op, Err: err}
	}
	if !ok {
		return nil
	}

	items, err := s.repo.Postgres.StreamItem.FindByStreamable(ctx, comment.SiteID, target)
	if err != nil {
		s.metrics.RecordFailure(op)
		return &SyncError{Op: op, Err: err}
	}

	saved := 0
	defer func() {
		if saved > 0 {
			s.invalidate(ctx, comment.SiteID, target)
		}
	}()

	for _, item := range items {
		if !apply(item) {
			continue
		}

		if err := s.repo.Postgres.StreamItem.SaveContext(ctx, item); err != nil {
			s.metrics.RecordFailure(op)
			s.logger.Sugar().Errorf("failed to save stream item(%d) for comment(%d): %s", item.ID, comment.ID, err.Error())
			return &SyncError{Op: op, StreamItemID: item.ID, Err: err}
		}
		saved++
		s.metrics.RecordUpdated(op)
	}

	return nil
}

// target resolves the streamable a comment's stream items hang off. A
// picture that no longer exists has none.
func (s *streamSyncService) target(ctx context.Context, comment model.Comment) (model.StreamTarget, bool, error) {
	if comment.Parent.Kind != model.ParentPicture {
		return model.TargetFor(comment.Parent, 0), true, nil
	}

	albumID, err := s.repo.Postgres.Parent.FindPictureAlbumID(ctx, comment.SiteID, comment.Parent.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.StreamTarget{}, false, nil
	}
	if err != nil {
		return model.StreamTarget{}, false, fmt.Errorf("find album of picture(%d): %w", comment.Parent.ID, err)
	}

	return model.TargetFor(comment.Parent, albumID), true, nil
}

func (s *streamSyncService) invalidate(ctx context.Context, siteID int64, target model.StreamTarget) {
	key := redisrepo.StreamKey(siteID, target.Type, target.ID)
	if err := s.repo.Redis.Cache.Del(ctx, key); err != nil {
		s.logger.Sugar().Errorf("failed to delete stream(%s) from redis: %s", key, err.Error())
	}
}
