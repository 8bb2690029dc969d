// Package eventstore reads and writes event templates. Reads return every
// event a user owns or that is shared with them.
package eventstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/xdoubleu/essentia/v2/pkg/database"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"

	"dzisiaj.app/internal/models"
)

// Store hands events back in loc, the zone recurrence arithmetic runs in.
type Store struct {
	db  postgres.DB
	loc *time.Location
}

func New(db postgres.DB, loc *time.Location) *Store {
	return &Store{db: db, loc: loc}
}

const selectColumns = `
	SELECT id, title, description, place, share,
	start_time, end_time, repeat, user_name
	FROM calendar.events
`

func (store *Store) GetAll(
	ctx context.Context,
	identity string,
) ([]models.Event, error) {
	query := selectColumns + `
		WHERE user_name = $1 OR share = $1
		ORDER BY start_time ASC
	`

	rows, err := store.db.Query(ctx, query, identity)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event *models.Event
		event, err = store.scanEvent(rows)
		if err != nil {
			return nil, postgres.PgxErrorToHTTPError(err)
		}

		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return events, nil
}

func (store *Store) GetByID(
	ctx context.Context,
	id string,
	identity string,
) (*models.Event, error) {
	query := selectColumns + `
		WHERE id = $1 AND (user_name = $2 OR share = $2)
	`

	event, err := store.scanEvent(store.db.QueryRow(ctx, query, id, identity))
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return event, nil
}

func (store *Store) Create(
	ctx context.Context,
	event *models.Event,
) error {
	query := `
		INSERT INTO calendar.events
		(id, title, description, place, share, start_time, end_time, repeat, user_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	_, err := store.db.Exec(
		ctx,
		query,
		event.ID,
		event.Title,
		event.Description,
		event.Place,
		event.Share,
		event.StartTime,
		event.EndTime,
		string(event.Repeat),
		event.UserName,
	)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	return nil
}

// Update overwrites the template. Only the owner may write.
func (store *Store) Update(
	ctx context.Context,
	event models.Event,
) error {
	query := `
		UPDATE calendar.events
		SET title = $3, description = $4, place = $5, share = $6,
		start_time = $7, end_time = $8, repeat = $9
		WHERE id = $1 AND user_name = $2
	`

	result, err := store.db.Exec(
		ctx,
		query,
		event.ID,
		event.UserName,
		event.Title,
		event.Description,
		event.Place,
		event.Share,
		event.StartTime,
		event.EndTime,
		string(event.Repeat),
	)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	if result.RowsAffected() == 0 {
		return database.ErrResourceNotFound
	}

	return nil
}

func (store *Store) Delete(
	ctx context.Context,
	id string,
	owner string,
) error {
	query := `
		DELETE FROM calendar.events
		WHERE id = $1 AND user_name = $2
	`

	result, err := store.db.Exec(ctx, query, id, owner)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	if result.RowsAffected() == 0 {
		return database.ErrResourceNotFound
	}

	return nil
}

func (store *Store) scanEvent(row pgx.Row) (*models.Event, error) {
	//nolint:exhaustruct //fields are scanned below
	event := models.Event{}
	var repeat string

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Place,
		&event.Share,
		&event.StartTime,
		&event.EndTime,
		&repeat,
		&event.UserName,
	)
	if err != nil {
		return nil, err
	}

	event.Repeat = models.Repeat(repeat)
	event = event.In(store.loc)

	return &event, nil
}
