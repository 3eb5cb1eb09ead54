package llm

import (
	"context"

	"golang.org/x/time/rate"
)

type limitedExtractor struct {
	limiter *rate.Limiter
	next    FieldExtractor
}

// NewRateLimited throttles calls to next to perSecond, with an equal burst.
// A non-positive rate disables limiting.
func NewRateLimited(next FieldExtractor, perSecond int) FieldExtractor {
	if perSecond <= 0 {
		return next
	}
	return &limitedExtractor{
		limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
		next:    next,
	}
}

func (l *limitedExtractor) ExtractFields(ctx context.Context, req ExtractRequest) (Extraction, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return Extraction{}, err
	}
	return l.next.ExtractFields(ctx, req)
}
