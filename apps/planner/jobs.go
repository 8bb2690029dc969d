package planner

import (
	"fmt"
	"net/http"

	"github.com/xdoubleu/essentia/v2/pkg/parse"
)

func (app *Planner) jobsRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("GET %s/jobs", prefix),
		app.Services.JobState.Handler(),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET %s/jobs/{id}/refresh", prefix),
		app.Services.Auth.Access(app.refreshJobHandler),
	)
}

func (app *Planner) refreshJobHandler(_ http.ResponseWriter, r *http.Request) {
	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	_, lastRunTime := app.jobQueue.FetchState(id)
	app.Services.JobState.UpdateState(id, true, lastRunTime)

	app.jobQueue.ForceRun(id)
}
