package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BloggingApp/community-service/internal/dto"
	"github.com/BloggingApp/community-service/internal/model"
	"github.com/BloggingApp/community-service/internal/repository"
	"github.com/BloggingApp/community-service/internal/repository/postgres"
	"github.com/BloggingApp/community-service/internal/repository/redisrepo"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type commentService struct {
	logger      *zap.Logger
	repo        *repository.Repository
	streamSync  StreamSync
	activityLog ActivityLog
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, streamSync StreamSync, activityLog ActivityLog) Comment {
	return &commentService{
		logger:      logger,
		repo:        repo,
		streamSync:  streamSync,
		activityLog: activityLog,
	}
}

func (s *commentService) Create(ctx context.Context, siteID int64, personID int64, input dto.CreateCommentDto) (*model.Comment, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if input.ParentCount() > 1 {
		return nil, ErrAmbiguousParent
	}

	parent := model.ResolveParent(input.VerseID, input.RecipeID, input.NoteID, input.PictureID)
	if !parent.IsZero() {
		if _, err := s.repo.Postgres.Parent.FindName(ctx, siteID, parent); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrParentNotFound
			}
			s.logger.Sugar().Errorf("failed to find %s(%d) on site(%d): %s", parent.Kind, parent.ID, siteID, err.Error())
			return nil, ErrInternal
		}
	}

	var created *model.Comment
	err := s.repo.Postgres.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		comment, err := s.repo.Postgres.Comment.Create(ctx, model.Comment{
			SiteID:   siteID,
			PersonID: personID,
			Text:     text,
			Parent:   parent,
		})
		if err != nil {
			s.logger.Sugar().Errorf("failed to create person(%d) comment on site(%d): %s", personID, siteID, err.Error())
			return ErrInternal
		}

		if err := s.activityLog.Record(ctx, *comment, model.LogActionCreate, map[string]any{"text": []any{nil, comment.Text}}); err != nil {
			return ErrInternal
		}

		// Stream items commit one by one; a failure here only undoes the
		// comment and its log item.
		if err := s.streamSync.OnCreate(postgres.WithoutTx(ctx), *comment); err != nil {
			s.logger.Sugar().Errorf("failed to sync stream items for created comment(%d): %s", comment.ID, err.Error())
			return ErrInternal
		}

		created = comment
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInternal) {
			s.logger.Sugar().Errorf("failed to commit person(%d) comment on site(%d): %s", personID, siteID, err.Error())
		}
		return nil, ErrInternal
	}

	return created, nil
}

func (s *commentService) FindByID(ctx context.Context, siteID int64, id int64) (*model.FullComment, error) {
	key := redisrepo.CommentKey(siteID, id)

	cachedComment, err := redisrepo.GetJSON[*model.FullComment](s.repo.Redis.Cache, ctx, key)
	if err == nil {
		return cachedComment, nil
	}
	if !errors.Is(err, redisrepo.ErrCacheMiss) {
		s.logger.Sugar().Errorf("failed to get comment(%d) from redis: %s", id, err.Error())
	}

	comment, err := s.repo.Postgres.Comment.FindWithAuthor(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to find comment(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	name, err := s.parentName(ctx, comment.Comment)
	if err != nil {
		return nil, ErrInternal
	}
	comment.Name = name

	if err := s.repo.Redis.Cache.SetJSON(ctx, key, comment, CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to set comment(%d) in redis: %s", id, err.Error())
	}

	return comment, nil
}

// parentName labels a comment; a parent row that no longer exists reads as "?".
func (s *commentService) parentName(ctx context.Context, comment model.Comment) (string, error) {
	if comment.Parent.IsZero() {
		return model.CommentName("", false), nil
	}

	name, err := s.repo.Postgres.Parent.FindName(ctx, comment.SiteID, comment.Parent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CommentName("", false), nil
		}
		s.logger.Sugar().Errorf("failed to find name of %s(%d): %s", comment.Parent.Kind, comment.Parent.ID, err.Error())
		return "", err
	}

	return model.CommentName(name, true), nil
}

func (s *commentService) Update(ctx context.Context, siteID int64, id int64, personID int64, input dto.EditCommentDto) (*model.Comment, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	comment, err := s.findOwned(ctx, siteID, id, personID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Postgres.Comment.UpdateText(ctx, siteID, id, text)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to update comment(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	if err := s.activityLog.Record(ctx, *updated, model.LogActionUpdate, map[string]any{"text": []any{comment.Text, updated.Text}}); err != nil {
		return nil, ErrInternal
	}

	s.invalidate(ctx, siteID, id)

	return updated, nil
}

func (s *commentService) Delete(ctx context.Context, siteID int64, id int64, personID int64) error {
	comment, err := s.findOwned(ctx, siteID, id, personID)
	if err != nil {
		return err
	}

	err = s.repo.Postgres.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Postgres.Comment.Delete(ctx, siteID, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrCommentNotFound
			}
			s.logger.Sugar().Errorf("failed to delete comment(%d): %s", id, err.Error())
			return ErrInternal
		}

		if err := s.activityLog.Record(ctx, *comment, model.LogActionDestroy, map[string]any{"text": []any{comment.Text, nil}}); err != nil {
			return ErrInternal
		}

		if err := s.streamSync.OnDestroy(postgres.WithoutTx(ctx), *comment); err != nil {
			s.logger.Sugar().Errorf("failed to sync stream items for destroyed comment(%d): %s", comment.ID, err.Error())
			return ErrInternal
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		if !errors.Is(err, ErrInternal) {
			s.logger.Sugar().Errorf("failed to commit delete of comment(%d): %s", id, err.Error())
		}
		return ErrInternal
	}

	s.invalidate(ctx, siteID, id)

	return nil
}

func (s *commentService) findOwned(ctx context.Context, siteID int64, id int64, personID int64) (*model.Comment, error) {
	comment, err := s.repo.Postgres.Comment.FindByID(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to find comment(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	if comment.PersonID != personID {
		return nil, ErrNotCommentAuthor
	}

	return comment, nil
}

func (s *commentService) invalidate(ctx context.Context, siteID int64, id int64) {
	if err := s.repo.Redis.Cache.Del(ctx, redisrepo.CommentKey(siteID, id)); err != nil {
		s.logger.Sugar().Errorf("failed to delete comment(%d) from redis: %s", id, err.Error())
	}
}
