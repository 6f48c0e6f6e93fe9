package port

import (
	"context"

	"github.com/bnema/snip/internal/domain"
)

type Trimmer interface {
	Trim(ctx context.Context, req domain.TrimRequest) (*domain.TrimResult, error)
}
