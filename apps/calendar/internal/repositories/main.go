package repositories

import (
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"

	"dzisiaj.app/internal/eventstore"
)

type Repositories struct {
	Events *eventstore.Store
	Feeds  *FeedRepository
}

func New(db postgres.DB, loc *time.Location) *Repositories {
	return &Repositories{
		Events: eventstore.New(db, loc),
		Feeds:  &FeedRepository{db: db},
	}
}
