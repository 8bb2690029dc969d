package planner

import (
	"fmt"
	"net/http"
)

func (app *Planner) apiRoutes(prefix string, mux *http.ServeMux) {
	apiPrefix := fmt.Sprintf("/%s/api", prefix)
	app.agendaRoutes(apiPrefix, mux)
	app.tasksRoutes(apiPrefix, mux)
	app.schemasRoutes(apiPrefix, mux)
	app.settingsRoutes(apiPrefix, mux)
	app.notificationsRoutes(apiPrefix, mux)
	app.jobsRoutes(apiPrefix, mux)
}

func (app *Planner) Routes(prefix string, mux *http.ServeMux) {
	app.templateRoutes(prefix, mux)
	app.apiRoutes(prefix, mux)
}
