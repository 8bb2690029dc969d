package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/contexttools"

	"dzisiaj.app/cmd/dzisiaj/internal/dtos"
	"dzisiaj.app/internal/constants"
	"dzisiaj.app/internal/models"
)

// landingURL is where a fresh session starts: today's plan.
const landingURL = "/planner/"

func (app *Application) authRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(fmt.Sprintf("POST /%s/auth/signin", prefix), app.signInHandler)
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/auth/signout", prefix),
		app.services.Auth.Access(app.signOutHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/auth/me", prefix),
		app.services.Auth.Access(app.meHandler),
	)
}

func (app *Application) signInHandler(w http.ResponseWriter, r *http.Request) {
	var signInDto dtos.SignInDto

	if err := httptools.ReadForm(r, &signInDto); err != nil {
		httptools.RedirectWithError(w, r, "/", err)
		return
	}

	if ok, errs := signInDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	accessToken, refreshToken, err := app.services.Auth.SignInWithEmail(&signInDto)
	if err != nil {
		httptools.RedirectWithError(w, r, "/", err)
		return
	}

	if !signInDto.RememberMe {
		refreshToken = nil
	}

	if err = app.setSessionCookies(w, *accessToken, refreshToken); err != nil {
		httptools.RedirectWithError(w, r, "/", err)
		return
	}

	http.Redirect(w, r, signInDto.ReturnURL(landingURL), http.StatusSeeOther)
}

// setSessionCookies writes the access cookie and, when given, the refresh
// cookie. Nothing is written if either cookie cannot be built.
func (app *Application) setSessionCookies(
	w http.ResponseWriter,
	accessToken string,
	refreshToken *string,
) error {
	cookies := []*http.Cookie{}

	accessCookie, err := app.services.Auth.CreateCookie(
		models.AccessScope,
		accessToken,
		app.config.AccessExpiry,
	)
	if err != nil {
		return err
	}
	cookies = append(cookies, accessCookie)

	if refreshToken != nil {
		var refreshCookie *http.Cookie
		refreshCookie, err = app.services.Auth.CreateCookie(
			models.RefreshScope,
			*refreshToken,
			app.config.RefreshExpiry,
		)
		if err != nil {
			return err
		}
		cookies = append(cookies, refreshCookie)
	}

	for _, cookie := range cookies {
		http.SetCookie(w, cookie)
	}

	return nil
}

func (app *Application) signOutHandler(w http.ResponseWriter, r *http.Request) {
	accessToken, err := r.Cookie("accessToken")
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	deleteAccess, deleteRefresh, err := app.services.Auth.SignOut(accessToken.Value)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, deleteAccess)

	if _, err = r.Cookie("refreshToken"); err == nil {
		http.SetCookie(w, deleteRefresh)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// meHandler reports who the session acts as. Sessions without an email
// act as the configured default user.
func (app *Application) meHandler(w http.ResponseWriter, r *http.Request) {
	user := contexttools.GetValue[models.User](r.Context(), constants.UserContextKey)
	if user == nil {
		httptools.HandleError(w, r, errors.New("no user in session"))
		return
	}

	err := httptools.WriteJSON(w, http.StatusOK, dtos.MeDto{
		ID:       user.ID,
		Identity: user.Identity(app.config.DefaultUserEmail),
		Fallback: user.Email == "",
	}, nil)
	if err != nil {
		httptools.HandleError(w, r, err)
	}
}
