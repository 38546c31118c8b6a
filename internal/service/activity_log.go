package service

import (
	"context"

	"github.com/BloggingApp/community-service/internal/model"
	"github.com/BloggingApp/community-service/internal/repository"
	"go.uber.org/zap"
)

const loggableComment = "Comment"

type activityLogService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newActivityLogService(logger *zap.Logger, repo *repository.Repository) ActivityLog {
	return &activityLogService{
		logger: logger,
		repo:   repo,
	}
}

func (s *activityLogService) Record(ctx context.Context, comment model.Comment, action model.LogAction, changes map[string]any) error {
	personID := comment.PersonID
	item := model.LogItem{
		SiteID:        comment.SiteID,
		PersonID:      &personID,
		LoggableType:  loggableComment,
		LoggableID:    comment.ID,
		Action:        action,
		ObjectChanges: changes,
	}

	if _, err := s.repo.Postgres.LogItem.Create(ctx, item); err != nil {
		s.logger.Sugar().Errorf("failed to log %s of comment(%d): %s", action, comment.ID, err.Error())
		return err
	}

	return nil
}
