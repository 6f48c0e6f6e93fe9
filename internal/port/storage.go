package port

import (
	"context"
	"io"

	"github.com/bnema/snip/internal/domain"
)

// ArtifactStore is the date-partitioned clip store.
type ArtifactStore interface {
	Publish(ctx context.Context, tmpPath, logicalName, jobID string) (*domain.Artifact, error)
	Fetch(ctx context.Context, key string, verify bool) (io.ReadCloser, *domain.Artifact, error)
	Delete(ctx context.Context, key string) (bool, error)
	Locate(ctx context.Context, jobID string) (*domain.Artifact, error)
	Sweep(ctx context.Context, policy domain.RetentionPolicy) (*domain.SweepResult, error)
}
