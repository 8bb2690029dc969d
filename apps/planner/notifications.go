package planner

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/coder/websocket"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
)

func (app *Planner) notificationsRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("GET %s/notifications", prefix),
		app.Services.Auth.Access(app.notificationsHandler),
	)
}

func (app *Planner) originPatterns() []string {
	webURL, err := url.Parse(app.Config.WebURL)
	if err != nil || webURL.Host == "" {
		return []string{}
	}
	return []string{webURL.Host}
}

// notificationsHandler keeps the socket open until the client leaves.
// Messages only flow from the server to the client.
func (app *Planner) notificationsHandler(w http.ResponseWriter, r *http.Request) {
	identity := app.identity(r)

	conn, err := websocket.Accept(
		w,
		r,
		//nolint:exhaustruct //other fields are optional
		&websocket.AcceptOptions{OriginPatterns: app.originPatterns()},
	)
	if err != nil {
		app.logger.Warn("websocket accept error", logging.ErrAttr(err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "closing connection")

	app.Services.Notifications.Subscribe(identity, conn)
	defer app.Services.Notifications.Unsubscribe(identity, conn)

	ctx := conn.CloseRead(r.Context())
	<-ctx.Done()
}
