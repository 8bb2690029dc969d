package repositories

import (
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"

	"dzisiaj.app/internal/eventstore"
)

type Repositories struct {
	Events   *eventstore.Store
	Tasks    *TaskRepository
	Schemas  *SchemaRepository
	Settings *SettingsRepository
}

func New(db postgres.DB, loc *time.Location) *Repositories {
	return &Repositories{
		Events:   eventstore.New(db, loc),
		Tasks:    &TaskRepository{db: db},
		Schemas:  &SchemaRepository{db: db},
		Settings: &SettingsRepository{db: db},
	}
}
