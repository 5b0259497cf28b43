package provider

import (
	"context"

	"launchlist/internal/domain/launch"
	"launchlist/internal/domain/launchpad"
	"launchlist/internal/domain/page"
)

// LaunchSource serves paginated launch queries.
type LaunchSource interface {
	FetchPage(ctx context.Context, req page.Request) (page.Result[launch.Launch], error)
}

// LaunchpadSource looks up a single launchpad.
type LaunchpadSource interface {
	GetLaunchpad(ctx context.Context, id string) (*launchpad.Launchpad, error)
}
