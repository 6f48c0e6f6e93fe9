package port

import (
	"context"

	"github.com/bnema/snip/internal/domain"
)

// Extractor talks to the source platform through an external tool.
type Extractor interface {
	// Probe enumerates the stream variants of url. Errors are *domain.JobError values
	// classified as SourceUnavailable or ResolutionFailed.
	Probe(ctx context.Context, url string) (*domain.SourceInfo, error)
	// Download fetches the variant named by req.Selector and returns the local file path.
	Download(ctx context.Context, req domain.DownloadRequest) (string, error)
}
