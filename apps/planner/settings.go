package planner

import (
	"fmt"
	"net/http"

	httptools "github.com/xdoubleu/essentia/v2/pkg/communication/httptools"

	"dzisiaj.app/apps/planner/internal/dtos"
)

func (app *Planner) settingsRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("POST %s/settings", prefix),
		app.Services.Auth.Access(app.updateSettingsHandler),
	)
}

func (app *Planner) updateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settingsDto dtos.SettingsDto

	err := httptools.ReadForm(r, &settingsDto)
	if err != nil {
		httptools.RedirectWithError(w, r, app.dayURL(""), err)
		return
	}

	if ok, errs := settingsDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	err = app.Services.Settings.Update(r.Context(), app.identity(r), &settingsDto)
	if err != nil {
		httptools.RedirectWithError(w, r, app.dayURL(""), err)
		return
	}

	http.Redirect(w, r, app.dayURL(""), http.StatusSeeOther)
}
