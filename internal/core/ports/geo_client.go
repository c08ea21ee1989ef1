package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// GeoClient resolves delivery addresses into grid locations.
type GeoClient interface {
	// Resolve returns the location for the given street.
	// Street must be non-blank; unknown streets are an error.
	Resolve(ctx context.Context, street string) (kernel.Location, error)
}
