package planner

import (
	"fmt"
	"net/http"
	"time"

	httptools "github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/parse"

	"dzisiaj.app/apps/planner/internal/dtos"
)

func (app *Planner) tasksRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("GET %s/tasks", prefix),
		app.Services.Auth.Access(app.getTasksHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/tasks", prefix),
		app.Services.Auth.Access(app.createTaskHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/tasks/{id}/schedule", prefix),
		app.Services.Auth.Access(app.scheduleTaskHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/tasks/{id}/unschedule", prefix),
		app.Services.Auth.Access(app.unscheduleTaskHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/tasks/{id}/done", prefix),
		app.Services.Auth.Access(app.doneTaskHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/tasks/{id}/delete", prefix),
		app.Services.Auth.Access(app.deleteTaskHandler),
	)
}

func (app *Planner) getTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := app.Services.Tasks.GetAll(r.Context(), app.identity(r))
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	err = httptools.WriteJSON(w, http.StatusOK, tasks, nil)
	if err != nil {
		httptools.HandleError(w, r, err)
	}
}

func (app *Planner) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	identity := app.identity(r)
	returnURL := app.dayURL(r.URL.Query().Get("date"))

	var taskDto dtos.TaskDto

	err := httptools.ReadForm(r, &taskDto)
	if err != nil {
		httptools.RedirectWithError(w, r, returnURL, err)
		return
	}

	if ok, errs := taskDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	_, err = app.Services.Tasks.Create(r.Context(), identity, &taskDto, time.Now())
	if err != nil {
		httptools.RedirectWithError(w, r, returnURL, err)
		return
	}

	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

func (app *Planner) scheduleTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	identity := app.identity(r)

	var scheduleDto dtos.ScheduleDto

	err = httptools.ReadForm(r, &scheduleDto)
	if err != nil {
		httptools.RedirectWithError(w, r, app.dayURL(""), err)
		return
	}

	if ok, errs := scheduleDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	returnURL := app.dayURL(scheduleDto.Date)

	err = app.Services.Tasks.Schedule(r.Context(), id, identity, &scheduleDto)
	if err != nil {
		httptools.RedirectWithError(w, r, returnURL, err)
		return
	}

	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

func (app *Planner) unscheduleTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	returnURL := app.dayURL(r.URL.Query().Get("date"))

	err = app.Services.Tasks.Unschedule(r.Context(), id, app.identity(r))
	if err != nil {
		httptools.RedirectWithError(w, r, returnURL, err)
		return
	}

	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

func (app *Planner) doneTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	returnURL := app.dayURL(r.URL.Query().Get("date"))

	var doneDto dtos.DoneDto

	err = httptools.ReadForm(r, &doneDto)
	if err != nil {
		httptools.RedirectWithError(w, r, returnURL, err)
		return
	}

	err = app.Services.Tasks.SetDone(r.Context(), id, app.identity(r), doneDto.Done)
	if err != nil {
		httptools.RedirectWithError(w, r, returnURL, err)
		return
	}

	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

func (app *Planner) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	returnURL := app.dayURL(r.URL.Query().Get("date"))

	err = app.Services.Tasks.Delete(r.Context(), id, app.identity(r))
	if err != nil {
		httptools.RedirectWithError(w, r, returnURL, err)
		return
	}

	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}
