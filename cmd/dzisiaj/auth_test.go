package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdoubleu/essentia/v2/pkg/test"

	"dzisiaj.app/cmd/dzisiaj/internal/dtos"
	"dzisiaj.app/internal/mocks"
)

func TestSignInHandler(t *testing.T) {
	tReq := test.CreateRequestTester(
		testApp.Routes(),
		http.MethodPost,
		"/api/auth/signin",
	)

	signInDto := dtos.SignInDto{
		Email:      "valid@example.com",
		Password:   "password",
		RememberMe: true,
	}

	tReq.SetFollowRedirect(false)

	tReq.SetContentType(test.FormContentType)
	tReq.SetData(signInDto)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusSeeOther, rs.StatusCode)
	assert.Equal(t, "/planner/", rs.Header.Get("Location"))
	assert.ElementsMatch(t, []string{"accessToken", "refreshToken"}, cookieNames(rs))
}

func cookieNames(rs *http.Response) []string {
	names := []string{}
	for _, cookie := range rs.Cookies() {
		names = append(names, cookie.Name)
	}
	return names
}

func TestSignInHandlerWithoutRememberMe(t *testing.T) {
	tReq := test.CreateRequestTester(
		testApp.Routes(),
		http.MethodPost,
		"/api/auth/signin",
	)

	//nolint:exhaustruct //other fields are optional
	signInDto := dtos.SignInDto{
		Email:    "valid@example.com",
		Password: "password",
		Next:     "/calendar/?from=2025-01-01",
	}

	tReq.SetFollowRedirect(false)

	tReq.SetContentType(test.FormContentType)
	tReq.SetData(signInDto)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusSeeOther, rs.StatusCode)
	assert.Equal(t, "/calendar/?from=2025-01-01", rs.Header.Get("Location"))
	assert.Equal(t, []string{"accessToken"}, cookieNames(rs))
}

func TestSignInHandlerIgnoresForeignNext(t *testing.T) {
	tReq := test.CreateRequestTester(
		testApp.Routes(),
		http.MethodPost,
		"/api/auth/signin",
	)

	//nolint:exhaustruct //other fields are optional
	signInDto := dtos.SignInDto{
		Email:    "valid@example.com",
		Password: "password",
		Next:     "//example.com/",
	}

	tReq.SetFollowRedirect(false)

	tReq.SetContentType(test.FormContentType)
	tReq.SetData(signInDto)

	rs := tReq.Do(t)
	assert.Equal(t, "/planner/", rs.Header.Get("Location"))
}

func TestSignInHandlerWrongPassword(t *testing.T) {
	tReq := test.CreateRequestTester(
		testApp.Routes(),
		http.MethodPost,
		"/api/auth/signin",
	)

	//nolint:exhaustruct //other fields are optional
	signInDto := dtos.SignInDto{
		Email:    "valid@example.com",
		Password: mocks.WrongPassword,
	}

	tReq.SetFollowRedirect(false)

	tReq.SetContentType(test.FormContentType)
	tReq.SetData(signInDto)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusSeeOther, rs.StatusCode)
	assert.Contains(t, rs.Header.Get("Location"), "/?error=")
	assert.Empty(t, cookieNames(rs))
}

func TestMeHandler(t *testing.T) {
	tests := []struct {
		token    string
		id       string
		fallback bool
	}{
		{mocks.MockedAccessToken, mocks.MockedUserID, false},
		{mocks.AnonymousAccessToken, mocks.AnonymousUserID, true},
	}

	for _, tt := range tests {
		tReq := test.CreateRequestTester(
			testApp.Routes(),
			http.MethodGet,
			"/api/auth/me",
		)
		tReq.AddCookie(&http.Cookie{Name: "accessToken", Value: tt.token})

		rs := tReq.Do(t)
		require.Equal(t, http.StatusOK, rs.StatusCode, tt.token)

		var me dtos.MeDto
		err := json.NewDecoder(rs.Body).Decode(&me)
		require.Nil(t, err)
		assert.Equal(t, tt.id, me.ID)
		assert.Equal(t, mocks.MockedUserEmail, me.Identity)
		assert.Equal(t, tt.fallback, me.Fallback)
	}
}

func TestSignInHandlerFailValidation(t *testing.T) {
	tReq := test.CreateRequestTester(
		testApp.Routes(),
		http.MethodPost,
		"/api/auth/signin",
	)

	//nolint:exhaustruct //other fields are optional
	signInDto := dtos.SignInDto{
		Email: "valid@example.com",
	}

	tReq.SetContentType(test.FormContentType)
	tReq.SetData(signInDto)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusUnprocessableEntity, rs.StatusCode)
}

func TestSignOutHandler(t *testing.T) {
	tReq := test.CreateRequestTester(
		testApp.Routes(),
		http.MethodGet,
		"/api/auth/signout",
	)

	tReq.SetFollowRedirect(false)

	tReq.AddCookie(&accessToken)
	tReq.AddCookie(&refreshToken)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusSeeOther, rs.StatusCode)
}

func TestSignIn(t *testing.T) {
	tReq := test.CreateRequestTester(
		testApp.Routes(),
		http.MethodGet,
		"/",
	)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusOK, rs.StatusCode)
}

func TestRefreshTokens(t *testing.T) {
	tReq := test.CreateRequestTester(
		testApp.Routes(),
		http.MethodGet,
		"/",
	)

	tReq.AddCookie(&refreshToken)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusOK, rs.StatusCode)
}

func TestAccessWithoutToken(t *testing.T) {
	tReq := test.CreateRequestTester(
		testApp.Routes(),
		http.MethodGet,
		"/planner/api/agenda",
	)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusUnauthorized, rs.StatusCode)
}

func TestAccessWithInvalidToken(t *testing.T) {
	tReq := test.CreateRequestTester(
		testApp.Routes(),
		http.MethodGet,
		"/calendar/api/occurrences",
	)

	tReq.AddCookie(&http.Cookie{Name: "accessToken", Value: "expired"})

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusUnauthorized, rs.StatusCode)
}
