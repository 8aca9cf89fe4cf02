package repositories

import (
	"context"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/pkg/graphql"
)

// AuthPayload is what login and signup return.
type AuthPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// IAuthRepository defines the account mutations offered by the backend.
type IAuthRepository interface {
	Login(ctx context.Context, email, password string) (*AuthPayload, error)
	Signup(ctx context.Context, name, email, password string, role models.RoleType) (*AuthPayload, error)
	Logout(ctx context.Context) error
}

// AuthRepository runs the account mutations against the GraphQL API
type AuthRepository struct {
	client Executor
}

// NewAuthRepository creates a new AuthRepository
func NewAuthRepository(client Executor) *AuthRepository {
	return &AuthRepository{client: client}
}

// Login exchanges credentials for a token. When the payload carries none, the
// token cookie set by the backend is used instead.
func (r *AuthRepository) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	var out struct {
		Login *AuthPayload `json:"login"`
	}
	req := graphql.Request{
		Query:     loginMutation,
		Variables: map[string]interface{}{"email": email, "password": password},
	}
	resp, err := do(ctx, r.client, req, &out)
	if err != nil {
		return nil, err
	}

	payload := out.Login
	if payload == nil {
		payload = &AuthPayload{}
	}
	if payload.Token == "" {
		if c, ok := resp.Cookie(graphql.TokenCookieName); ok {
			payload.Token = c.Value
		}
	}
	return payload, nil
}

// Signup creates an account and returns its token.
func (r *AuthRepository) Signup(ctx context.Context, name, email, password string, role models.RoleType) (*AuthPayload, error) {
	var out struct {
		Signup *AuthPayload `json:"signup"`
	}
	req := graphql.Request{
		Query: signupMutation,
		Variables: map[string]interface{}{
			"email":    email,
			"password": password,
			"name":     name,
			"role":     string(role),
		},
	}
	if _, err := do(ctx, r.client, req, &out); err != nil {
		return nil, err
	}
	if out.Signup == nil {
		return &AuthPayload{}, nil
	}
	return out.Signup, nil
}

// Logout asks the backend to end its side of the session.
func (r *AuthRepository) Logout(ctx context.Context) error {
	_, err := r.client.Execute(ctx, graphql.Request{Query: logoutMutation})
	return err
}
