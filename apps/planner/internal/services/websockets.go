package services

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	wstools "github.com/xdoubleu/essentia/v2/pkg/communication/wstools"
	"github.com/xdoubleu/essentia/v2/pkg/threading"

	"dzisiaj.app/apps/planner/internal/dtos"
)

// JobStateService publishes the state of background jobs, one topic per job.
type JobStateService struct {
	allowedOrigins []string
	handler        *wstools.WebSocketHandler[dtos.SubscribeMessageDto]
	jobQueue       *threading.JobQueue
	topics         map[string]*wstools.Topic
}

func NewJobStateService(
	logger *slog.Logger,
	allowedOrigins []string,
	jobQueue *threading.JobQueue,
) *JobStateService {
	handler := wstools.CreateWebSocketHandler[dtos.SubscribeMessageDto](
		logger,
		1,
		100, //nolint:mnd //no magic number
	)

	return &JobStateService{
		allowedOrigins: allowedOrigins,
		handler:        &handler,
		jobQueue:       jobQueue,
		topics:         make(map[string]*wstools.Topic),
	}
}

func (service *JobStateService) Handler() http.HandlerFunc {
	return service.handler.Handler()
}

func (service *JobStateService) UpdateState(
	id string,
	isRunning bool,
	lastRunTime *time.Time,
) {
	topic, ok := service.topics[id]
	if !ok {
		return
	}

	topic.EnqueueEvent(dtos.StateMessageDto{
		IsRefreshing: isRunning,
		LastRefresh:  lastRunTime,
	})
}

func (service *JobStateService) RegisterTopics(topics []string) {
	for _, topic := range topics {
		registeredTopic, err := service.handler.AddTopic(
			topic,
			service.allowedOrigins,
			func(_ context.Context, tp *wstools.Topic) (any, error) {
				isRefreshing, lastRefresh := service.jobQueue.FetchState(tp.Name)
				return dtos.StateMessageDto{
					IsRefreshing: isRefreshing,
					LastRefresh:  lastRefresh,
				}, nil
			},
		)
		if err != nil {
			panic(err)
		}
		service.topics[topic] = registeredTopic
	}
}
