package calendar

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/database"
	"github.com/xdoubleu/essentia/v2/pkg/parse"
	tpltools "github.com/xdoubleu/essentia/v2/pkg/tpl"

	"dzisiaj.app/apps/calendar/internal/dtos"
	"dzisiaj.app/apps/calendar/internal/services"
	"dzisiaj.app/internal/models"
)

//nolint:gochecknoglobals //template helpers
var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("Mon 2 Jan")
	},
	"clock": func(t time.Time) string {
		return t.Format("15:04")
	},
	"input": func(t time.Time) string {
		return t.Format(dtos.DateTimeLayout)
	},
}

func (app *Calendar) templateRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/{$}", prefix),
		app.Services.Auth.TemplateAccess(app.rootHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/events/{id}", prefix),
		app.Services.Auth.TemplateAccess(app.editHandler),
	)
}

type rootData struct {
	From     string
	To       string
	PrevFrom string
	NextFrom string
	Days     []services.Day
	FeedURL  string
	Repeats  []models.Repeat
}

func (app *Calendar) rootHandler(w http.ResponseWriter, r *http.Request) {
	identity := app.identity(r)
	loc := app.Services.Events.Location()

	rangeDto := dtos.RangeDto{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if ok, _ := rangeDto.Validate(); !ok {
		rangeDto = dtos.RangeDto{}
	}

	from, to := rangeDto.Window(time.Now(), loc)

	occurrences, err := app.Services.Events.GetOccurrences(r.Context(), identity, from, to)
	if err != nil {
		panic(err)
	}

	var feedURL string
	token, err := app.Services.ICS.GetFeedToken(r.Context(), identity)
	switch {
	case err == nil:
		feedURL = fmt.Sprintf("%s/%s/feed/%s.ics", app.Config.WebURL, app.GetName(), *token)
	case !errors.Is(err, database.ErrResourceNotFound):
		panic(err)
	}

	data := rootData{
		From:     from.Format(dtos.DateLayout),
		To:       to.Format(dtos.DateLayout),
		PrevFrom: from.AddDate(0, -1, 0).Format(dtos.DateLayout),
		NextFrom: from.AddDate(0, 1, 0).Format(dtos.DateLayout),
		Days:     services.GroupByDay(occurrences, from, to, loc),
		FeedURL:  feedURL,
		Repeats:  models.Repeats,
	}

	tpltools.RenderWithPanic(app.tpl, w, "calendar.html", data)
}

type editData struct {
	// OccurrenceID is the id the user clicked, possibly a synthesized one.
	OccurrenceID string
	Event        models.Event
	CanEdit      bool
	Repeats      []models.Repeat
}

func (app *Calendar) editHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	identity := app.identity(r)

	event, err := app.Services.Events.GetTemplate(r.Context(), id, identity)
	if err != nil {
		panic(err)
	}

	loc := app.Services.Events.Location()
	event.StartTime = event.StartTime.In(loc)
	event.EndTime = event.EndTime.In(loc)

	tpltools.RenderWithPanic(app.tpl, w, "event.html", editData{
		OccurrenceID: id,
		Event:        *event,
		CanEdit:      event.IsOwnedBy(identity),
		Repeats:      models.Repeats,
	})
}
