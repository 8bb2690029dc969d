package planner

import (
	"fmt"
	"net/http"

	httptools "github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/parse"

	"dzisiaj.app/apps/planner/internal/dtos"
)

func (app *Planner) schemasRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("POST %s/schemas", prefix),
		app.Services.Auth.Access(app.createSchemaHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/schemas/{id}/delete", prefix),
		app.Services.Auth.Access(app.deleteSchemaHandler),
	)
}

func (app *Planner) createSchemaHandler(w http.ResponseWriter, r *http.Request) {
	var schemaDto dtos.SchemaDto

	err := httptools.ReadForm(r, &schemaDto)
	if err != nil {
		httptools.RedirectWithError(w, r, app.dayURL(""), err)
		return
	}

	if ok, errs := schemaDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	_, err = app.Services.Schemas.Create(r.Context(), app.identity(r), &schemaDto)
	if err != nil {
		httptools.RedirectWithError(w, r, app.dayURL(""), err)
		return
	}

	http.Redirect(w, r, app.dayURL(""), http.StatusSeeOther)
}

func (app *Planner) deleteSchemaHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	err = app.Services.Schemas.Delete(r.Context(), id, app.identity(r))
	if err != nil {
		httptools.RedirectWithError(w, r, app.dayURL(""), err)
		return
	}

	http.Redirect(w, r, app.dayURL(""), http.StatusSeeOther)
}
