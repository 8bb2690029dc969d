package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/xdoubleu/essentia/v2/pkg/database"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
)

type FeedRepository struct {
	db postgres.DB
}

// Rotate issues a new token for owner, replacing the previous one.
func (repo *FeedRepository) Rotate(
	ctx context.Context,
	owner string,
) (string, error) {
	query := `
		INSERT INTO calendar.feeds (token, user_name)
		VALUES ($1, $2)
		ON CONFLICT (user_name)
		DO UPDATE SET token = $1
		RETURNING token
	`

	var token string
	err := repo.db.QueryRow(ctx, query, uuid.NewString(), owner).Scan(&token)
	if err != nil {
		return "", postgres.PgxErrorToHTTPError(err)
	}

	return token, nil
}

func (repo *FeedRepository) GetByOwner(
	ctx context.Context,
	owner string,
) (string, error) {
	query := `
		SELECT token
		FROM calendar.feeds
		WHERE user_name = $1
	`

	var token string
	err := repo.db.QueryRow(ctx, query, owner).Scan(&token)
	if err != nil {
		return "", postgres.PgxErrorToHTTPError(err)
	}

	return token, nil
}

func (repo *FeedRepository) GetOwner(
	ctx context.Context,
	token string,
) (string, error) {
	query := `
		SELECT user_name
		FROM calendar.feeds
		WHERE token = $1
	`

	var owner string
	err := repo.db.QueryRow(ctx, query, token).Scan(&owner)
	if err != nil {
		return "", postgres.PgxErrorToHTTPError(err)
	}

	return owner, nil
}

func (repo *FeedRepository) Delete(
	ctx context.Context,
	owner string,
) error {
	query := `
		DELETE FROM calendar.feeds
		WHERE user_name = $1
	`

	result, err := repo.db.Exec(ctx, query, owner)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	if result.RowsAffected() == 0 {
		return database.ErrResourceNotFound
	}

	return nil
}
