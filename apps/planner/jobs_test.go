package planner_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/test"

	"dzisiaj.app/apps/planner/internal/jobs"
	"dzisiaj.app/internal/auth"
	"dzisiaj.app/internal/mocks"
	"dzisiaj.app/internal/models"
)

type usersAuthService struct {
	auth.Service
	users []models.User
}

func (s usersAuthService) GetAllUsers() ([]models.User, error) {
	return s.users, nil
}

func TestRemindersJob(t *testing.T) {
	job := jobs.NewRemindersJob(
		testApp.Services.Auth,
		testApp.Services.Reminders,
		testApp.Config.DefaultUserEmail,
		func() time.Time { return now },
	)
	assert.Equal(t, jobs.RemindersJobID, job.ID())
	assert.Equal(t, time.Minute, job.RunEvery())

	err := job.Run(context.Background(), logging.NewNopLogger())
	assert.Nil(t, err)

	err = job.Run(context.Background(), logging.NewNopLogger())
	assert.Nil(t, err)
}

func TestRemindersJobCancelled(t *testing.T) {
	job := jobs.NewRemindersJob(
		testApp.Services.Auth,
		testApp.Services.Reminders,
		testApp.Config.DefaultUserEmail,
		func() time.Time { return now },
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := job.Run(ctx, logging.NewNopLogger())
	assert.ErrorIs(t, err, context.Canceled)

	_, ok := job.LastRun(mocks.MockedUserEmail)
	assert.False(t, ok)
}

func TestRemindersJobTracksEachUser(t *testing.T) {
	clock := now
	job := jobs.NewRemindersJob(
		usersAuthService{
			Service: testApp.Services.Auth,
			users: []models.User{
				{ID: "1", Email: mocks.MockedUserEmail},
				{ID: "2", Email: "second@example.com"},
			},
		},
		testApp.Services.Reminders,
		testApp.Config.DefaultUserEmail,
		func() time.Time { return clock },
	)

	err := job.Run(context.Background(), logging.NewNopLogger())
	require.Nil(t, err)

	for _, identity := range []string{mocks.MockedUserEmail, "second@example.com"} {
		lastRun, ok := job.LastRun(identity)
		require.True(t, ok, identity)
		assert.Equal(t, now, lastRun, identity)
	}

	clock = now.Add(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = job.Run(ctx, logging.NewNopLogger())
	assert.ErrorIs(t, err, context.Canceled)

	lastRun, _ := job.LastRun(mocks.MockedUserEmail)
	assert.Equal(t, now, lastRun)

	err = job.Run(context.Background(), logging.NewNopLogger())
	require.Nil(t, err)

	lastRun, _ = job.LastRun("second@example.com")
	assert.Equal(t, clock, lastRun)
}

func TestRefreshJobHandler(t *testing.T) {
	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodGet,
		fmt.Sprintf("/%s/api/jobs/%s/refresh", testApp.GetName(), jobs.RemindersJobID),
	)

	tReq.AddCookie(&accessToken)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusOK, rs.StatusCode)
}
