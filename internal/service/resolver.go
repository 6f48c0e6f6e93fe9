package service

import (
	"context"
	"fmt"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/infrastructure/logger"
	"github.com/bnema/snip/internal/port"
)

// FallbackPolicy bounds how far the resolver may stray from a requested variant.
type FallbackPolicy struct {
	// CapHeight is the ceiling of the "best combined" step.
	CapHeight int
	// MaxHeightDrop limits the "nearest lower" step to variants at most this many pixels
	// below the requested height. Zero means no limit.
	MaxHeightDrop int
	// AllowAny enables the last step, which takes any usable variant.
	AllowAny bool
}

func DefaultFallbackPolicy() FallbackPolicy {
	return FallbackPolicy{CapHeight: 720, AllowAny: true}
}

// Selection is a chosen variant and the step of the chain that produced it.
type Selection struct {
	Variant  domain.FormatVariant
	Strategy string
}

// selectionRequest is what the chain knows about the caller's choice.
type selectionRequest struct {
	formatID string
	height   int
	// audio reports whether the source has an audio-only track to merge with video-only variants.
	audio bool
}

type strategy struct {
	name string
	pick func(variants []domain.FormatVariant, req selectionRequest) (domain.FormatVariant, bool)
}

type FormatResolver struct {
	extractor port.Extractor
	policy    FallbackPolicy
	chain     []strategy
}

func NewFormatResolver(extractor port.Extractor, policy FallbackPolicy) *FormatResolver {
	r := &FormatResolver{
		extractor: extractor,
		policy:    policy,
	}
	r.chain = []strategy{
		{name: "exact", pick: r.exact},
		{name: "nearest-lower", pick: r.nearestLower},
		{name: "best-capped", pick: r.bestCapped},
		{name: "any", pick: r.anyUsable},
	}
	return r
}

// Resolve probes url and returns its variants without placeholders. No usable variant at all
// is ResolutionFailed.
func (r *FormatResolver) Resolve(ctx context.Context, url string) (*domain.SourceInfo, error) {
	info, err := r.extractor.Probe(ctx, url)
	if err != nil {
		return nil, domain.Classify(err, domain.KindResolutionFailed)
	}
	info.Variants = domain.FilterPlaceholders(info.Variants)
	if countUsable(info.Variants) == 0 {
		return nil, domain.NewJobError(domain.KindResolutionFailed,
			fmt.Sprintf("no usable video variants for %s", logger.SanitizeForLog(url)))
	}
	return info, nil
}

// Select walks the fallback chain. requestedHeight is the height the caller saw for
// requestedFormat; zero means unknown.
func (r *FormatResolver) Select(variants []domain.FormatVariant, requestedFormat string, requestedHeight int) (*Selection, error) {
	variants = domain.FilterPlaceholders(variants)
	if countUsable(variants) == 0 {
		return nil, domain.NewJobError(domain.KindResolutionFailed, "no usable video variants")
	}

	req := selectionRequest{
		formatID: requestedFormat,
		height:   requestedHeight,
	}
	if req.height == 0 {
		req.height = domain.HeightFromFormatID(requestedFormat)
	}
	if req.height == 0 {
		// the exact id might still be in the list
		for _, v := range variants {
			if v.FormatID == requestedFormat {
				req.height = v.Height
				break
			}
		}
	}
	for _, v := range variants {
		if v.HasAudio && !v.HasVideo {
			req.audio = true
			break
		}
	}

	for _, s := range r.chain {
		if v, ok := s.pick(variants, req); ok {
			if requestedFormat != "" && s.name != "exact" {
				logger.Info.Printf("format %q unavailable, fell back to %s (%s, %dp)",
					logger.SanitizeForLog(requestedFormat), v.FormatID, s.name, v.Height)
			}
			return &Selection{Variant: v, Strategy: s.name}, nil
		}
	}

	msg := "no variant satisfies the fallback policy"
	if requestedFormat != "" {
		msg = fmt.Sprintf("format %q and every fallback candidate are unavailable", requestedFormat)
	}
	return nil, domain.NewJobError(domain.KindFormatUnavailable, msg)
}

func (r *FormatResolver) exact(variants []domain.FormatVariant, req selectionRequest) (domain.FormatVariant, bool) {
	if req.formatID == "" {
		return domain.FormatVariant{}, false
	}
	for _, v := range variants {
		if v.FormatID == req.formatID && v.Usable() {
			return v, true
		}
	}
	return domain.FormatVariant{}, false
}

func (r *FormatResolver) nearestLower(variants []domain.FormatVariant, req selectionRequest) (domain.FormatVariant, bool) {
	if req.formatID == "" || req.height <= 0 {
		return domain.FormatVariant{}, false
	}
	return best(variants, func(v domain.FormatVariant) bool {
		if !withAudio(v, req.audio) || v.Height <= 0 || v.Height > req.height {
			return false
		}
		return r.policy.MaxHeightDrop == 0 || req.height-v.Height <= r.policy.MaxHeightDrop
	})
}

func (r *FormatResolver) bestCapped(variants []domain.FormatVariant, req selectionRequest) (domain.FormatVariant, bool) {
	return best(variants, func(v domain.FormatVariant) bool {
		return withAudio(v, req.audio) && v.Height > 0 && (r.policy.CapHeight <= 0 || v.Height <= r.policy.CapHeight)
	})
}

func (r *FormatResolver) anyUsable(variants []domain.FormatVariant, _ selectionRequest) (domain.FormatVariant, bool) {
	if !r.policy.AllowAny {
		return domain.FormatVariant{}, false
	}
	return best(variants, domain.FormatVariant.Usable)
}

// withAudio reports whether downloading v yields a clip with sound. Video-only variants get
// the best audio track merged in when the source has one.
func withAudio(v domain.FormatVariant, sourceHasAudio bool) bool {
	if !v.Usable() {
		return false
	}
	return v.HasAudio || sourceHasAudio
}

// best returns the tallest usable variant accepted by keep. Ties prefer a variant that carries
// its own audio, then the larger known size, then list order.
func best(variants []domain.FormatVariant, keep func(domain.FormatVariant) bool) (domain.FormatVariant, bool) {
	var chosen domain.FormatVariant
	found := false
	for _, v := range variants {
		if !v.Usable() || !keep(v) {
			continue
		}
		if !found || better(v, chosen) {
			chosen = v
			found = true
		}
	}
	return chosen, found
}

func better(a, b domain.FormatVariant) bool {
	if a.Height != b.Height {
		return a.Height > b.Height
	}
	if a.Combined() != b.Combined() {
		return a.Combined()
	}
	return size(a) > size(b)
}

func size(v domain.FormatVariant) int64 {
	if v.ApproxSizeBytes == nil {
		return 0
	}
	return *v.ApproxSizeBytes
}

func countUsable(variants []domain.FormatVariant) int {
	n := 0
	for _, v := range variants {
		if v.Usable() {
			n++
		}
	}
	return n
}
