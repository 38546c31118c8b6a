package postgres

import (
	"context"

	"github.com/BloggingApp/community-service/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const commentColumns = "c.id, c.site_id, c.person_id, c.text, c.verse_id, c.recipe_id, c.note_id, c.picture_id, c.created_at, c.updated_at"

type commentRepo struct {
	db *pgxpool.Pool
}

func newCommentRepo(db *pgxpool.Pool) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	now := dbNow()

	cols := comment.Parent.Columns()
	if err := conn(ctx, r.db).QueryRow(
		ctx,
		`INSERT INTO comments(site_id, person_id, text, verse_id, recipe_id, note_id, picture_id, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at`,
		comment.SiteID,
		comment.PersonID,
		comment.Text,
		cols.VerseID,
		cols.RecipeID,
		cols.NoteID,
		cols.PictureID,
		now,
		now,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
		return nil, err
	}
	comment.CreatedAt = comment.CreatedAt.UTC()
	comment.UpdatedAt = comment.UpdatedAt.UTC()

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, siteID int64, id int64) (*model.Comment, error) {
	row := conn(ctx, r.db).QueryRow(
		ctx,
		"SELECT "+commentColumns+" FROM comments c WHERE c.site_id = $1 AND c.id = $2",
		siteID,
		id,
	)

	return scanComment(row)
}

func (r *commentRepo) FindWithAuthor(ctx context.Context, siteID int64, id int64) (*model.FullComment, error) {
	var (
		comment model.FullComment
		cols    model.ParentColumns
	)
	if err := conn(ctx, r.db).QueryRow(
		ctx,
		`SELECT `+commentColumns+`, p.first_name, p.last_name, p.avatar_url
		FROM comments c
		JOIN people p ON c.person_id = p.id AND p.site_id = c.site_id
		WHERE c.site_id = $1 AND c.id = $2`,
		siteID,
		id,
	).Scan(
		&comment.Comment.ID,
		&comment.Comment.SiteID,
		&comment.Comment.PersonID,
		&comment.Comment.Text,
		&cols.VerseID,
		&cols.RecipeID,
		&cols.NoteID,
		&cols.PictureID,
		&comment.Comment.CreatedAt,
		&comment.Comment.UpdatedAt,
		&comment.Author.FirstName,
		&comment.Author.LastName,
		&comment.Author.AvatarURL,
	); err != nil {
		return nil, err
	}
	comment.Comment.Parent = model.ResolveParent(cols.VerseID, cols.RecipeID, cols.NoteID, cols.PictureID)

	return &comment, nil
}

func (r *commentRepo) UpdateText(ctx context.Context, siteID int64, id int64, text string) (*model.Comment, error) {
	row := conn(ctx, r.db).QueryRow(
		ctx,
		`UPDATE comments c SET text = $1, updated_at = $2
		WHERE c.site_id = $3 AND c.id = $4
		RETURNING `+commentColumns,
		text,
		dbNow(),
		siteID,
		id,
	)

	return scanComment(row)
}

func (r *commentRepo) Delete(ctx context.Context, siteID int64, id int64) error {
	tag, err := conn(ctx, r.db).Exec(ctx, "DELETE FROM comments WHERE site_id = $1 AND id = $2", siteID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanComment(row pgx.Row) (*model.Comment, error) {
	var (
		comment model.Comment
		cols    model.ParentColumns
	)
	if err := row.Scan(
		&comment.ID,
		&comment.SiteID,
		&comment.PersonID,
		&comment.Text,
		&cols.VerseID,
		&cols.RecipeID,
		&cols.NoteID,
		&cols.PictureID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	comment.Parent = model.ResolveParent(cols.VerseID, cols.RecipeID, cols.NoteID, cols.PictureID)

	return &comment, nil
}
