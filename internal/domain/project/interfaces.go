package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Ensure(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]ProjectSummary, error)
}
