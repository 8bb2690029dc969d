package planner

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	httptools "github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/contexttools"

	"dzisiaj.app/apps/planner/internal/dtos"
	"dzisiaj.app/internal/constants"
	"dzisiaj.app/internal/models"
)

func (app *Planner) agendaRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("GET %s/agenda", prefix),
		app.Services.Auth.Access(app.getAgendaHandler),
	)
}

func (app *Planner) identity(r *http.Request) string {
	user := contexttools.GetValue[models.User](r.Context(), constants.UserContextKey)
	if user == nil {
		panic(errors.New("not signed in"))
	}

	return user.Identity(app.Config.DefaultUserEmail)
}

// dayURL is the day view of date, or of today when date is empty.
func (app *Planner) dayURL(date string) string {
	if date == "" {
		return fmt.Sprintf("/%s/", app.GetName())
	}
	return fmt.Sprintf("/%s/?date=%s", app.GetName(), url.QueryEscape(date))
}

func (app *Planner) getAgendaHandler(w http.ResponseWriter, r *http.Request) {
	identity := app.identity(r)

	dayDto := dtos.DayDto{Date: r.URL.Query().Get("date")}
	if ok, errs := dayDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	day := dayDto.Day(time.Now(), app.Services.Agenda.Location())

	plan, err := app.Services.Agenda.Plan(r.Context(), identity, day)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	err = httptools.WriteJSON(w, http.StatusOK, plan, nil)
	if err != nil {
		httptools.HandleError(w, r, err)
	}
}
