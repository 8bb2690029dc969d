package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"dzisiaj.app/apps/planner/internal/dtos"
	"dzisiaj.app/internal/metrics"
)

// NotificationService keeps the open notification sockets of every user.
type NotificationService struct {
	logger  *slog.Logger
	mu      sync.Mutex
	clients map[string]map[*websocket.Conn]struct{}
}

func NewNotificationService(logger *slog.Logger) *NotificationService {
	return &NotificationService{
		logger:  logger,
		mu:      sync.Mutex{},
		clients: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (service *NotificationService) Subscribe(identity string, conn *websocket.Conn) {
	service.mu.Lock()
	defer service.mu.Unlock()

	if _, ok := service.clients[identity]; !ok {
		service.clients[identity] = make(map[*websocket.Conn]struct{})
	}
	service.clients[identity][conn] = struct{}{}

	service.logger.Debug("notification client connected", slog.String("user", identity))
}

func (service *NotificationService) Unsubscribe(identity string, conn *websocket.Conn) {
	service.mu.Lock()
	defer service.mu.Unlock()

	delete(service.clients[identity], conn)
	if len(service.clients[identity]) == 0 {
		delete(service.clients, identity)
	}

	service.logger.Debug("notification client disconnected", slog.String("user", identity))
}

func (service *NotificationService) Connected(identity string) int {
	service.mu.Lock()
	defer service.mu.Unlock()

	return len(service.clients[identity])
}

// Send writes msg to every client of identity and returns how many
// received it. Failed writes are logged and do not stop delivery.
func (service *NotificationService) Send(
	ctx context.Context,
	identity string,
	msg dtos.NotificationDto,
) int {
	service.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(service.clients[identity]))
	for conn := range service.clients[identity] {
		conns = append(conns, conn)
	}
	service.mu.Unlock()

	sent := 0
	for _, conn := range conns {
		if err := wsjson.Write(ctx, conn, msg); err != nil {
			service.logger.Warn(
				"failed to write notification",
				slog.String("user", identity),
				slog.String("error", err.Error()),
			)
			continue
		}
		sent++
	}

	if msg.Type == dtos.ReminderNotification {
		metrics.RemindersSent.Add(float64(sent))
	}

	return sent
}
