package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// GuardedService bounds every media host call with a timeout. Uploads also
// go through a circuit breaker that trips after repeated failures; deletions
// always reach the host, since a skipped deletion orphans the image.
type GuardedService struct {
	inner   Service
	breaker *circuitBreaker
	timeout time.Duration
}

// NewGuardedService wraps inner. A zero timeout leaves calls bounded only by
// the caller's context.
func NewGuardedService(inner Service, host string, timeout time.Duration) (*GuardedService, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: media service", ErrNilDependency)
	}
	return &GuardedService{
		inner:   inner,
		breaker: newCircuitBreaker(host, 3, time.Minute),
		timeout: timeout,
	}, nil
}

// Upload stores the image through the wrapped host
func (s *GuardedService) Upload(ctx context.Context, file io.Reader, filename string) (*Asset, error) {
	if err := s.breaker.allow(); err != nil {
		return nil, err
	}

	var asset *Asset
	err := s.call(ctx, func(ctx context.Context) error {
		var err error
		asset, err = s.inner.Upload(ctx, file, filename)
		return err
	})
	switch {
	case err == nil:
		s.breaker.recordSuccess()
	case countsAgainstHost(err):
		s.breaker.recordFailure(err)
	}
	return asset, err
}

// Destroy deletes the image through the wrapped host, bounded only by the
// timeout. An open circuit does not block it.
func (s *GuardedService) Destroy(ctx context.Context, publicID string) error {
	return s.call(ctx, func(ctx context.Context) error {
		return s.inner.Destroy(ctx, publicID)
	})
}

func (s *GuardedService) call(ctx context.Context, fn func(context.Context) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return fn(ctx)
}

// countsAgainstHost reports whether err says something about host health.
// Bad input and caller cancellation do not.
func countsAgainstHost(err error) bool {
	return !errors.Is(err, ErrInvalidPublicID) &&
		!errors.Is(err, ErrUnsupportedType) &&
		!errors.Is(err, context.Canceled)
}
