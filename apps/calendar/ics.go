package calendar

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	httptools "github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/database"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/parse"
)

const maxImportSize = 10 << 20

func (app *Calendar) icsRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("POST %s/import", prefix),
		app.Services.Auth.Access(app.importHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/feed", prefix),
		app.Services.Auth.Access(app.rotateFeedHandler),
	)
}

func (app *Calendar) feedRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(fmt.Sprintf("GET /%s/feed/{token}", prefix), app.feedHandler)
}

func (app *Calendar) importHandler(w http.ResponseWriter, r *http.Request) {
	identity := app.identity(r)

	err := r.ParseMultipartForm(maxImportSize)
	if err != nil {
		httptools.RedirectWithError(w, r, app.rootURL(), err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		httptools.FailedValidationResponse(w, r, map[string]string{
			"file": "must be provided",
		})
		return
	}
	defer file.Close()

	result, err := app.Services.ICS.Import(r.Context(), identity, file)
	if err != nil {
		httptools.RedirectWithError(w, r, app.rootURL(), err)
		return
	}

	app.logger.Info(
		"imported calendar file",
		"imported", result.Imported,
		"skipped", result.Skipped,
	)

	http.Redirect(w, r, app.rootURL(), http.StatusSeeOther)
}

func (app *Calendar) rotateFeedHandler(w http.ResponseWriter, r *http.Request) {
	identity := app.identity(r)

	_, err := app.Services.ICS.RotateFeedToken(r.Context(), identity)
	if err != nil {
		httptools.RedirectWithError(w, r, app.rootURL(), err)
		return
	}

	http.Redirect(w, r, app.rootURL(), http.StatusSeeOther)
}

func (app *Calendar) feedHandler(w http.ResponseWriter, r *http.Request) {
	token, err := parse.URLParam[string](r, "token", nil)
	if err != nil {
		http.Error(w, "Invalid feed URL", http.StatusBadRequest)
		return
	}

	token = strings.TrimSuffix(token, ".ics")

	data, err := app.Services.ICS.Export(r.Context(), token)
	if errors.Is(err, database.ErrResourceNotFound) {
		http.Error(w, "Feed not found", http.StatusNotFound)
		return
	}
	if err != nil {
		app.logger.Error("failed to export calendar", logging.ErrAttr(err))
		http.Error(w, "Failed to export calendar", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	_, err = w.Write(data)
	if err != nil {
		app.logger.Error("failed to write calendar feed", logging.ErrAttr(err))
	}
}
