package places

import (
	"context"
	"fmt"
	"place-backfill-service/internal/domain"
	"place-backfill-service/internal/ports"
	"sync"
)

type MockResponse struct {
	Center domain.Point
	Places []domain.Place
	Err    error
}

// MockPlaceSearcher answers nearby searches from a fixed table keyed by center point.
// It is safe for concurrent use and records every request it receives.
type MockPlaceSearcher struct {
	mu    sync.Mutex
	m     map[string]MockResponse
	calls []ports.NearbySearchRequest
}

func NewMockPlaceSearcher(responses []MockResponse) *MockPlaceSearcher {
	m := make(map[string]MockResponse, len(responses))
	for _, r := range responses {
		m[r.Center.String()] = r
	}
	return &MockPlaceSearcher{m: m}
}

func (s *MockPlaceSearcher) NearbySearch(ctx context.Context, req ports.NearbySearchRequest) ([]domain.Place, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	r, ok := s.m[req.Center.String()]
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("missing response for center %s", req.Center)
	}
	if r.Err != nil {
		return nil, r.Err
	}

	out := make([]domain.Place, len(r.Places))
	copy(out, r.Places)
	return out, nil
}

// Calls returns a copy of the requests received so far.
func (s *MockPlaceSearcher) Calls() []ports.NearbySearchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ports.NearbySearchRequest, len(s.calls))
	copy(out, s.calls)
	return out
}
