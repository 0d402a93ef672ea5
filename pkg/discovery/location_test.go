package discovery

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeProvider struct {
	state     PermissionState
	stateErr  error
	position  Coordinate
	posErr    error
	posCalls  int
	permCalls int
}

func (f *fakeProvider) Permission(ctx context.Context) (PermissionState, error) {
	f.permCalls++
	return f.state, f.stateErr
}

func (f *fakeProvider) CurrentPosition(ctx context.Context) (Coordinate, error) {
	f.posCalls++
	return f.position, f.posErr
}

func TestResolveGranted(t *testing.T) {
	provider := &fakeProvider{
		state:    PermissionGranted,
		position: Coordinate{Latitude: -1.5, Longitude: 30.1},
	}
	resolver := NewLocationResolver(provider)

	coord, notice := resolver.Resolve(context.Background())
	if coord != provider.position {
		t.Fatalf("coord = %v, want %v", coord, provider.position)
	}
	if notice != "" {
		t.Fatalf("notice = %q, want empty", notice)
	}
}

func TestResolveDeniedFallsBackToDefault(t *testing.T) {
	provider := &fakeProvider{state: PermissionDenied}
	resolver := NewLocationResolver(provider)

	coord, notice := resolver.Resolve(context.Background())
	if coord != DefaultCoordinate {
		t.Fatalf("coord = %v, want default", coord)
	}
	if notice != NoticeDefaultLocation {
		t.Fatalf("notice = %q", notice)
	}
	if provider.posCalls != 0 {
		t.Fatalf("position requested despite denied permission")
	}
}

func TestResolvePositionErrorFallsBackToDefault(t *testing.T) {
	provider := &fakeProvider{
		state:  PermissionGranted,
		posErr: errors.New("timeout"),
	}
	resolver := NewLocationResolver(provider)

	coord, notice := resolver.Resolve(context.Background())
	if coord != DefaultCoordinate {
		t.Fatalf("coord = %v, want default", coord)
	}
	if notice == "" {
		t.Fatalf("expected a notice on fallback")
	}
}

func TestResolvePromptInvokesRationale(t *testing.T) {
	provider := &fakeProvider{
		state:    PermissionPrompt,
		position: Coordinate{Latitude: -2, Longitude: 29.9},
	}
	resolver := NewLocationResolver(provider)

	rationaleShown := false
	resolver.OnPromptRationale = func() { rationaleShown = true }

	coord, _ := resolver.Resolve(context.Background())
	if !rationaleShown {
		t.Fatalf("prompt rationale not invoked")
	}
	if coord != provider.position {
		t.Fatalf("coord = %v, want %v", coord, provider.position)
	}
}

func TestResolveThrottleReturnsCachedFix(t *testing.T) {
	provider := &fakeProvider{
		state:    PermissionGranted,
		position: Coordinate{Latitude: -1.1, Longitude: 30.2},
	}
	resolver := NewLocationResolver(provider)

	now := time.Unix(1000, 0)
	resolver.now = func() time.Time { return now }

	first, _ := resolver.Resolve(context.Background())

	// 3s later: inside the 5s window, must serve the cached fix.
	now = now.Add(3 * time.Second)
	second, _ := resolver.Resolve(context.Background())
	if second != first {
		t.Fatalf("throttled resolve returned %v, want cached %v", second, first)
	}
	if provider.posCalls != 1 {
		t.Fatalf("position calls = %d, want 1", provider.posCalls)
	}

	// Past the window the provider is consulted again.
	now = now.Add(3 * time.Second)
	provider.position = Coordinate{Latitude: -1.2, Longitude: 30.3}
	third, _ := resolver.Resolve(context.Background())
	if third != provider.position {
		t.Fatalf("post-throttle resolve = %v, want fresh %v", third, provider.position)
	}
	if provider.posCalls != 2 {
		t.Fatalf("position calls = %d, want 2", provider.posCalls)
	}
}

func TestResolveErrorAfterFixReturnsCache(t *testing.T) {
	provider := &fakeProvider{
		state:    PermissionGranted,
		position: Coordinate{Latitude: -1.1, Longitude: 30.2},
	}
	resolver := NewLocationResolver(provider)

	now := time.Unix(1000, 0)
	resolver.now = func() time.Time { return now }

	first, _ := resolver.Resolve(context.Background())

	now = now.Add(10 * time.Second)
	provider.posErr = errors.New("gps lost")
	coord, notice := resolver.Resolve(context.Background())
	if coord != first {
		t.Fatalf("coord = %v, want last known fix %v", coord, first)
	}
	if notice != "" {
		t.Fatalf("notice = %q, want empty when serving a cached fix", notice)
	}
}

func TestResolveNilProvider(t *testing.T) {
	resolver := NewLocationResolver(nil)
	coord, notice := resolver.Resolve(context.Background())
	if coord != DefaultCoordinate || notice == "" {
		t.Fatalf("coord=%v notice=%q", coord, notice)
	}
}
