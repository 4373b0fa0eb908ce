// Package geolocation defines the contract for acquiring the caller's
// position. The core services only consume the coordinate pair; how a
// fix is produced (browser API, mobile SDK, IP lookup) stays behind the
// Locator interface so the ranking logic can be tested without any
// device context.
package geolocation

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/booklyhq/booking-api/pkg/geo"
)

// ErrorCode mirrors the browser geolocation failure taxonomy.
type ErrorCode int

const (
	PermissionDenied ErrorCode = iota + 1
	PositionUnavailable
	Timeout
)

type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Locator produces the caller's current position.
type Locator interface {
	CurrentPosition(ctx context.Context) (geo.Point, error)
}

// StaticLocator always reports the same fix. Deployments serving a
// single locale use it as the fallback when a request carries no
// coordinates.
type StaticLocator struct {
	Position geo.Point
}

func (l StaticLocator) CurrentPosition(ctx context.Context) (geo.Point, error) {
	if !l.Position.Valid() {
		return geo.Point{}, &Error{Code: PositionUnavailable, Message: "no position configured"}
	}
	return l.Position, nil
}

const (
	// DefaultTimeout bounds a single position acquisition.
	DefaultTimeout = 15 * time.Second
	// DefaultCacheWindow is how long a fix may be reused.
	DefaultCacheWindow = 60 * time.Second

	cacheKey = "last_fix"
)

// CachedLocator wraps a Locator with the acquisition timeout and the
// result cache window the calling UI would otherwise have to manage.
// Calls within the cache window reuse the previous fix.
type CachedLocator struct {
	inner   Locator
	timeout time.Duration
	cache   *gocache.Cache
}

func NewCachedLocator(inner Locator, timeout, window time.Duration) *CachedLocator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if window <= 0 {
		window = DefaultCacheWindow
	}
	return &CachedLocator{
		inner:   inner,
		timeout: timeout,
		cache:   gocache.New(window, 2*window),
	}
}

func (l *CachedLocator) CurrentPosition(ctx context.Context) (geo.Point, error) {
	if cached, ok := l.cache.Get(cacheKey); ok {
		return cached.(geo.Point), nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	pos, err := l.inner.CurrentPosition(ctx)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return geo.Point{}, &Error{Code: Timeout, Message: "position acquisition timed out"}
		}
		return geo.Point{}, err
	}

	l.cache.SetDefault(cacheKey, pos)
	return pos, nil
}
