package store

import (
	"context"
	"errors"

	"github.com/reelpilot-org/reelpilot/pkg/types"
)

var ErrNotFound = errors.New("not found")

// Store defines the persistence layer contract for video records.
type Store interface {
	// Lifecycle
	Open(ctx context.Context) error
	Close() error

	// Video Operations
	SaveVideo(ctx context.Context, video *types.Video) error
	GetVideo(ctx context.Context, id string) (*types.Video, error)
	ListVideos(ctx context.Context) ([]types.Video, error)
	DeleteVideo(ctx context.Context, id string) error
}
