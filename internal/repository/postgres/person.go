package postgres

import (
	"context"

	"github.com/BloggingApp/community-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type personRepo struct {
	db *pgxpool.Pool
}

func newPersonRepo(db *pgxpool.Pool) Person {
	return &personRepo{
		db: db,
	}
}

func (r *personRepo) FindByID(ctx context.Context, siteID int64, id int64) (*model.Person, error) {
	var person model.Person
	if err := conn(ctx, r.db).QueryRow(
		ctx,
		"SELECT p.id, p.site_id, p.first_name, p.last_name, p.avatar_url FROM people p WHERE p.site_id = $1 AND p.id = $2",
		siteID,
		id,
	).Scan(
		&person.ID,
		&person.SiteID,
		&person.FirstName,
		&person.LastName,
		&person.AvatarURL,
	); err != nil {
		return nil, err
	}

	return &person, nil
}
