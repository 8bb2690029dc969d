package repositories

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/xdoubleu/essentia/v2/pkg/database"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"

	"dzisiaj.app/apps/planner/internal/models"
)

type SchemaRepository struct {
	db postgres.DB
}

func (repo *SchemaRepository) GetAll(
	ctx context.Context,
	owner string,
) ([]models.DaySchema, error) {
	query := `
		SELECT id, name, weekdays, entries, user_name
		FROM planner.day_schemas
		WHERE user_name = $1
		ORDER BY name
	`

	rows, err := repo.db.Query(ctx, query, owner)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}
	defer rows.Close()

	schemas := []models.DaySchema{}
	for rows.Next() {
		schema, err := scanSchema(rows)
		if err != nil {
			return nil, postgres.PgxErrorToHTTPError(err)
		}

		schemas = append(schemas, schema)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return schemas, nil
}

func (repo *SchemaRepository) Create(
	ctx context.Context,
	schema models.DaySchema,
) error {
	query := `
		INSERT INTO planner.day_schemas (id, name, weekdays, entries, user_name)
		VALUES ($1, $2, $3, $4, $5)
	`

	entries, err := json.Marshal(schema.Entries)
	if err != nil {
		return err
	}

	_, err = repo.db.Exec(
		ctx,
		query,
		schema.ID,
		schema.Name,
		schema.Weekdays,
		string(entries),
		schema.UserName,
	)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	return nil
}

func (repo *SchemaRepository) Delete(
	ctx context.Context,
	id string,
	owner string,
) error {
	query := `
		DELETE FROM planner.day_schemas
		WHERE id = $1 AND user_name = $2
	`

	result, err := repo.db.Exec(ctx, query, id, owner)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	if result.RowsAffected() == 0 {
		return database.ErrResourceNotFound
	}

	return nil
}

func scanSchema(row pgx.Row) (models.DaySchema, error) {
	var schema models.DaySchema
	var entries []byte

	err := row.Scan(
		&schema.ID,
		&schema.Name,
		&schema.Weekdays,
		&entries,
		&schema.UserName,
	)
	if err != nil {
		return schema, err
	}

	err = json.Unmarshal(entries, &schema.Entries)
	return schema, err
}
