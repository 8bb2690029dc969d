package mocks

import (
	"context"
	"net/http"

	"dzisiaj.app/internal/auth"
	"dzisiaj.app/internal/constants"
	"dzisiaj.app/internal/models"
)

const MockedUserEmail = "user@example.com"

func NewMockedAuthService(userID string) auth.Service {
	return &MockedAuthService{
		user: models.User{
			ID:    userID,
			Email: MockedUserEmail,
		},
	}
}

type MockedAuthService struct {
	user models.User
}

func (m *MockedAuthService) Access(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), constants.UserContextKey, m.user)
		next(w, r.WithContext(ctx))
	}
}

func (m *MockedAuthService) TemplateAccess(next http.HandlerFunc) http.HandlerFunc {
	return m.Access(next)
}

func (m *MockedAuthService) GetAllUsers() ([]models.User, error) {
	return []models.User{m.user}, nil
}

func (m *MockedAuthService) SignOut(
	_ string,
) (*http.Cookie, *http.Cookie, error) {
	return nil, nil, nil
}
