package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/logging"

	"dzisiaj.app/apps/planner/internal/services"
	"dzisiaj.app/internal/auth"
)

const RemindersJobID = "reminders"

// RemindersJob delivers everything that became due since the previous
// completed dispatch of each user.
type RemindersJob struct {
	authService      auth.Service
	reminderService  *services.ReminderService
	defaultUserEmail string
	now              func() time.Time
	mu               *sync.Mutex
	lastRun          map[string]time.Time
}

func NewRemindersJob(
	authService auth.Service,
	reminderService *services.ReminderService,
	defaultUserEmail string,
	now func() time.Time,
) RemindersJob {
	return RemindersJob{
		authService:      authService,
		reminderService:  reminderService,
		defaultUserEmail: defaultUserEmail,
		now:              now,
		mu:               &sync.Mutex{},
		lastRun:          map[string]time.Time{},
	}
}

func (j RemindersJob) ID() string {
	return RemindersJobID
}

func (j RemindersJob) RunEvery() time.Duration {
	return time.Minute
}

func (j RemindersJob) Run(ctx context.Context, logger *slog.Logger) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	until := j.now()

	users, err := j.authService.GetAllUsers()
	if err != nil {
		return err
	}

	for _, user := range users {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		identity := user.Identity(j.defaultUserEmail)

		after, ok := j.lastRun[identity]
		if !ok {
			after = until.Add(-j.RunEvery())
		}

		sent, err := j.reminderService.Dispatch(ctx, identity, after, until)
		if err != nil {
			logger.Error(
				"failed to dispatch reminders",
				slog.String("user", identity),
				logging.ErrAttr(err),
			)
			continue
		}

		j.lastRun[identity] = until

		if sent > 0 {
			logger.Debug(
				"dispatched notifications",
				slog.String("user", identity),
				slog.Int("count", sent),
			)
		}
	}

	return nil
}

// LastRun is the end of the last window delivered to identity.
func (j RemindersJob) LastRun(identity string) (time.Time, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	lastRun, ok := j.lastRun[identity]
	return lastRun, ok
}
