// Package repositories reads and writes domain records through the remote
// GraphQL API, which owns persistence.
package repositories

import (
	"context"

	"github.com/yigit/schooladmin/internal/pkg/graphql"
)

// Executor is the slice of graphql.Client the repositories depend on.
type Executor interface {
	Execute(ctx context.Context, req graphql.Request) (*graphql.Response, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository IStudentRepository
	AuthRepository    IAuthRepository
}

// NewRepositories initializes all repositories
func NewRepositories(client Executor) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(client),
		AuthRepository:    NewAuthRepository(client),
	}
}

// do runs req and decodes the data payload into out.
func do(ctx context.Context, client Executor, req graphql.Request, out interface{}) (*graphql.Response, error) {
	resp, err := client.Execute(ctx, req)
	if err != nil {
		return resp, err
	}
	return resp, resp.Decode(out)
}
