package mocks

import (
	"errors"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
)

// MockedUserID is the user behind the "access" token.
const MockedUserID = "4001e9cf-3fbe-4b09-863f-bd1654cfbf76"

// AnonymousUserID is the user behind the "anonymous" token. It has no email,
// so it acts as the configured default user.
const AnonymousUserID = "7d1c5a4e-2b8f-4c1e-9a3d-6f0e8b2c4d10"

const (
	MockedAccessToken    = "access"
	MockedRefreshToken   = "refresh"
	AnonymousAccessToken = "anonymous"
	WrongPassword        = "wrong"
)

// MockedGoTrueClient covers the calls the auth service makes: password and
// refresh grants, user lookup and logout. Other calls panic.
type MockedGoTrueClient struct {
	gotrue.Client
	token string
}

func NewMockedGoTrueClient() gotrue.Client {
	//nolint:exhaustruct //unused client calls panic
	return MockedGoTrueClient{}
}

func (client MockedGoTrueClient) WithToken(token string) gotrue.Client {
	client.token = token
	return client
}

func (client MockedGoTrueClient) Token(
	req types.TokenRequest,
) (*types.TokenResponse, error) {
	if req.GrantType == "password" && req.Password == WrongPassword {
		return nil, errors.New("invalid login credentials")
	}

	//nolint:exhaustruct //only tokens are read
	return &types.TokenResponse{
		Session: types.Session{
			AccessToken:  MockedAccessToken,
			RefreshToken: MockedRefreshToken,
		},
	}, nil
}

func (client MockedGoTrueClient) GetUser() (*types.UserResponse, error) {
	var user types.User

	switch client.token {
	case MockedAccessToken:
		user.ID = uuid.MustParse(MockedUserID)
		user.Email = MockedUserEmail
	case AnonymousAccessToken:
		user.ID = uuid.MustParse(AnonymousUserID)
	default:
		return nil, errors.New("invalid token")
	}

	return &types.UserResponse{User: user}, nil
}

func (client MockedGoTrueClient) Logout() error {
	if client.token == "" {
		return errors.New("no session")
	}
	return nil
}
