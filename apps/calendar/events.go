package calendar

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	httptools "github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/contexttools"
	"github.com/xdoubleu/essentia/v2/pkg/parse"

	"dzisiaj.app/apps/calendar/internal/dtos"
	"dzisiaj.app/internal/constants"
	"dzisiaj.app/internal/models"
)

func (app *Calendar) eventsRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("GET %s/occurrences", prefix),
		app.Services.Auth.Access(app.getOccurrencesHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/events", prefix),
		app.Services.Auth.Access(app.createEventHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/events/{id}/edit", prefix),
		app.Services.Auth.Access(app.editEventHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/events/{id}/delete", prefix),
		app.Services.Auth.Access(app.deleteEventHandler),
	)
}

func (app *Calendar) identity(r *http.Request) string {
	user := contexttools.GetValue[models.User](r.Context(), constants.UserContextKey)
	if user == nil {
		panic(errors.New("not signed in"))
	}

	return user.Identity(app.Config.DefaultUserEmail)
}

func (app *Calendar) rootURL() string {
	return fmt.Sprintf("/%s/", app.GetName())
}

// returnURL is the local page named by the "next" form value, if any.
func (app *Calendar) returnURL(r *http.Request) string {
	next := r.FormValue("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return app.rootURL()
	}

	return next
}

func (app *Calendar) getOccurrencesHandler(w http.ResponseWriter, r *http.Request) {
	identity := app.identity(r)

	rangeDto := dtos.RangeDto{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if ok, errs := rangeDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	from, to := rangeDto.Window(time.Now(), app.Services.Events.Location())

	occurrences, err := app.Services.Events.GetOccurrences(r.Context(), identity, from, to)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	err = httptools.WriteJSON(w, http.StatusOK, occurrences, nil)
	if err != nil {
		httptools.HandleError(w, r, err)
	}
}

func (app *Calendar) createEventHandler(w http.ResponseWriter, r *http.Request) {
	identity := app.identity(r)

	var eventDto dtos.EventDto

	err := httptools.ReadForm(r, &eventDto)
	if err != nil {
		httptools.RedirectWithError(w, r, app.rootURL(), err)
		return
	}

	if ok, errs := eventDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	_, err = app.Services.Events.Create(r.Context(), identity, &eventDto)
	if err != nil {
		httptools.RedirectWithError(w, r, app.rootURL(), err)
		return
	}

	http.Redirect(w, r, app.rootURL(), http.StatusSeeOther)
}

func (app *Calendar) editEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	identity := app.identity(r)
	editURL := fmt.Sprintf("/%s/events/%s", app.GetName(), id)

	var eventDto dtos.EventDto

	err = httptools.ReadForm(r, &eventDto)
	if err != nil {
		httptools.RedirectWithError(w, r, editURL, err)
		return
	}

	if ok, errs := eventDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	err = app.Services.Events.Update(r.Context(), id, identity, &eventDto)
	if err != nil {
		httptools.RedirectWithError(w, r, editURL, err)
		return
	}

	http.Redirect(w, r, app.rootURL(), http.StatusSeeOther)
}

func (app *Calendar) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	identity := app.identity(r)

	target := app.returnURL(r)

	err = app.Services.Events.Delete(r.Context(), id, identity)
	if err != nil {
		httptools.RedirectWithError(w, r, target, err)
		return
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}
