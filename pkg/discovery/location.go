package discovery

import (
	"context"
	"sync"
	"time"
)

// PermissionState is the platform geolocation permission status.
type PermissionState string

const (
	PermissionGranted     PermissionState = "granted"
	PermissionPrompt      PermissionState = "prompt"
	PermissionDenied      PermissionState = "denied"
	PermissionUnsupported PermissionState = "unsupported"
)

// NoticeDefaultLocation is the user-facing message attached when the
// resolver falls back to the default coordinate.
const NoticeDefaultLocation = "Using default location. Enable location access for nearby results."

// LocationProvider abstracts the platform geolocation API.
type LocationProvider interface {
	// Permission reports the current permission state without prompting.
	Permission(ctx context.Context) (PermissionState, error)
	// CurrentPosition requests the device position. On the prompt state
	// this is what surfaces the platform permission dialog.
	CurrentPosition(ctx context.Context) (Coordinate, error)
}

// LocationResolver turns the geolocation API into a coordinate the
// search session can always use: it caches successful fixes, throttles
// repeat lookups, and degrades to DefaultCoordinate with a notice when
// access is denied or unavailable.
type LocationResolver struct {
	provider LocationProvider

	// OnPromptRationale, if set, is called before a lookup that will
	// trigger the platform permission prompt, so the UI can explain why
	// location is being requested.
	OnPromptRationale func()

	throttle time.Duration
	now      func() time.Time

	mu      sync.Mutex
	lastAt  time.Time
	lastFix Coordinate
	hasFix  bool
}

// NewLocationResolver creates a resolver with a 5 second lookup
// throttle.
func NewLocationResolver(provider LocationProvider) *LocationResolver {
	return &LocationResolver{
		provider: provider,
		throttle: 5 * time.Second,
		now:      time.Now,
	}
}

// Resolve returns the coordinate to search from and a notice for the
// user, empty when location was resolved normally.
//
// Calls within the throttle window return the cached fix without
// touching the provider. Denied or unsupported permission, and position
// errors, fall back to DefaultCoordinate.
func (r *LocationResolver) Resolve(ctx context.Context) (Coordinate, string) {
	r.mu.Lock()
	if r.hasFix && r.now().Sub(r.lastAt) < r.throttle {
		fix := r.lastFix
		r.mu.Unlock()
		return fix, ""
	}
	r.mu.Unlock()

	if r.provider == nil {
		return DefaultCoordinate, NoticeDefaultLocation
	}

	state, err := r.provider.Permission(ctx)
	if err != nil {
		state = PermissionUnsupported
	}

	switch state {
	case PermissionDenied, PermissionUnsupported:
		return DefaultCoordinate, NoticeDefaultLocation
	case PermissionPrompt:
		if r.OnPromptRationale != nil {
			r.OnPromptRationale()
		}
	}

	coord, err := r.provider.CurrentPosition(ctx)
	if err != nil {
		r.mu.Lock()
		if r.hasFix {
			fix := r.lastFix
			r.mu.Unlock()
			return fix, ""
		}
		r.mu.Unlock()
		return DefaultCoordinate, NoticeDefaultLocation
	}

	r.mu.Lock()
	r.lastFix = coord
	r.lastAt = r.now()
	r.hasFix = true
	r.mu.Unlock()
	return coord, ""
}
