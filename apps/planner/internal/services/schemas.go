package services

import (
	"context"

	"github.com/google/uuid"

	"dzisiaj.app/apps/planner/internal/dtos"
	"dzisiaj.app/apps/planner/internal/models"
	"dzisiaj.app/apps/planner/internal/repositories"
)

type SchemaService struct {
	schemas *repositories.SchemaRepository
}

func (service *SchemaService) GetAll(
	ctx context.Context,
	owner string,
) ([]models.DaySchema, error) {
	return service.schemas.GetAll(ctx, owner)
}

func (service *SchemaService) Create(
	ctx context.Context,
	owner string,
	schemaDto *dtos.SchemaDto,
) (*models.DaySchema, error) {
	schema, err := schemaDto.ToSchema(uuid.NewString(), owner)
	if err != nil {
		return nil, err
	}

	err = service.schemas.Create(ctx, schema)
	if err != nil {
		return nil, err
	}

	return &schema, nil
}

func (service *SchemaService) Delete(
	ctx context.Context,
	id string,
	owner string,
) error {
	return service.schemas.Delete(ctx, id, owner)
}
