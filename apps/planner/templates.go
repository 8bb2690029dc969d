package planner

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	tpltools "github.com/xdoubleu/essentia/v2/pkg/tpl"

	"dzisiaj.app/apps/planner/internal/dtos"
	"dzisiaj.app/apps/planner/internal/jobs"
	"dzisiaj.app/apps/planner/internal/models"
)

//nolint:gochecknoglobals //template helpers
var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("Monday 2 January 2006")
	},
	"weekday": func(day int) string {
		return time.Weekday(day).String()[:3]
	},
	"contains": func(days []int, day int) bool {
		for _, d := range days {
			if d == day {
				return true
			}
		}
		return false
	},
}

func (app *Planner) templateRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/{$}", prefix),
		app.Services.Auth.TemplateAccess(app.rootHandler),
	)
}

type rootData struct {
	Date     string
	PrevDate string
	NextDate string
	Plan     models.DayPlan
	Schemas  []models.DaySchema
	Settings models.Settings
	Weekdays []int
	JobID    string
}

func (app *Planner) rootHandler(w http.ResponseWriter, r *http.Request) {
	identity := app.identity(r)

	dayDto := dtos.DayDto{Date: r.URL.Query().Get("date")}
	if ok, _ := dayDto.Validate(); !ok {
		dayDto = dtos.DayDto{}
	}

	day := dayDto.Day(time.Now(), app.Services.Agenda.Location())

	plan, err := app.Services.Agenda.Plan(r.Context(), identity, day)
	if err != nil {
		panic(err)
	}

	schemas, err := app.Services.Schemas.GetAll(r.Context(), identity)
	if err != nil {
		panic(err)
	}

	settings, err := app.Services.Settings.Get(r.Context(), identity)
	if err != nil {
		panic(err)
	}

	tpltools.RenderWithPanic(app.tpl, w, "day.html", rootData{
		Date:     day.Format(dtos.DateLayout),
		PrevDate: day.AddDate(0, 0, -1).Format(dtos.DateLayout),
		NextDate: day.AddDate(0, 0, 1).Format(dtos.DateLayout),
		Plan:     *plan,
		Schemas:  schemas,
		Settings: *settings,
		Weekdays: []int{1, 2, 3, 4, 5, 6, 0},
		JobID:    jobs.RemindersJobID,
	})
}
