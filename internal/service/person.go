package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/community-service/internal/model"
	"github.com/BloggingApp/community-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type personService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newPersonService(logger *zap.Logger, repo *repository.Repository) Person {
	return &personService{
		logger: logger,
		repo:   repo,
	}
}

func (s *personService) FindByID(ctx context.Context, siteID int64, id int64) (*model.Person, error) {
	person, err := s.repo.Postgres.Person.FindByID(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		s.logger.Sugar().Errorf("failed to find person(%d) on site(%d): %s", id, siteID, err.Error())
		return nil, ErrInternal
	}

	return person, nil
}
