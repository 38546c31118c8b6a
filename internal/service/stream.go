package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/community-service/internal/model"
	"github.com/BloggingApp/community-service/internal/repository"
	"github.com/BloggingApp/community-service/internal/repository/redisrepo"
	"go.uber.org/zap"
)

type streamService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newStreamService(logger *zap.Logger, repo *repository.Repository) Stream {
	return &streamService{
		logger: logger,
		repo:   repo,
	}
}

func (s *streamService) FindStreamItems(ctx context.Context, siteID int64, target model.StreamTarget) ([]*model.StreamItem, error) {
	key := redisrepo.StreamKey(siteID, target.Type, target.ID)

	cachedItems, err := redisrepo.GetJSON[[]*model.StreamItem](s.repo.Redis.Cache, ctx, key)
	if err == nil {
		return cachedItems, nil
	}
	if !errors.Is(err, redisrepo.ErrCacheMiss) {
		s.logger.Sugar().Errorf("failed to get stream(%s) from redis: %s", key, err.Error())
	}

	items, err := s.repo.Postgres.StreamItem.FindByStreamable(ctx, siteID, target)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find stream(%s) from postgres: %s", key, err.Error())
		return nil, ErrInternal
	}

	if items == nil {
		items = []*model.StreamItem{}
	}

	if err := s.repo.Redis.Cache.SetJSON(ctx, key, items, STREAM_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to set stream(%s) in redis: %s", key, err.Error())
	}

	return items, nil
}
