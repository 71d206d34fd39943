package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"place-backfill-service/internal/domain"
	"place-backfill-service/internal/platform/obs"
	"place-backfill-service/internal/ports"
	"strconv"
	"time"
)

const (
	DefaultBaseURL     = "https://maps.googleapis.com/maps/api"
	DefaultMaxAttempts = 4
	DefaultMaxPages    = 1
	DefaultPageDelay   = 2 * time.Second

	nearbySearchPath = "/place/nearbysearch/json"

	statusOK             = "OK"
	statusZeroResults    = "ZERO_RESULTS"
	statusOverQueryLimit = "OVER_QUERY_LIMIT"
	statusRequestDenied  = "REQUEST_DENIED"
	statusInvalidRequest = "INVALID_REQUEST"
	statusUnknownError   = "UNKNOWN_ERROR"
)

type nearbyResponse struct {
	Status        string         `json:"status"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	NextPageToken string         `json:"next_page_token,omitempty"`
	Results       []nearbyResult `json:"results"`
}

type nearbyResult struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Vicinity string `json:"vicinity"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Types  []string `json:"types"`
	Rating *float64 `json:"rating,omitempty"`
}

func (r nearbyResult) toPlace() domain.Place {
	return domain.Place{
		PlaceID:  r.PlaceID,
		Name:     r.Name,
		Location: domain.Point{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		Icon:     r.Icon,
		Types:    r.Types,
		Vicinity: r.Vicinity,
		Rating:   r.Rating,
	}
}

// GoogleNearbySearchClient implements PlaceSearcher using the Places Nearby Search web service.
//
// Transient failures are retried with exponential backoff. Once the retry
// budget is spent the search fails with ports.ErrRetryBudgetExhausted so the
// caller can skip the center point. Denied or malformed requests fail at once.
//
// The client is safe for concurrent use.
type GoogleNearbySearchClient struct {
	session     *http.Client
	baseURL     string
	maxAttempts int
	maxPages    int
	backoff     time.Duration
	pageDelay   time.Duration
}

type Option func(*GoogleNearbySearchClient)

func WithHTTPClient(c *http.Client) Option {
	return func(g *GoogleNearbySearchClient) { g.session = c }
}

func WithBaseURL(u string) Option {
	return func(g *GoogleNearbySearchClient) { g.baseURL = u }
}

func WithMaxAttempts(n int) Option {
	return func(g *GoogleNearbySearchClient) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithMaxPages follows next_page_token for up to n result pages per search.
func WithMaxPages(n int) Option {
	return func(g *GoogleNearbySearchClient) {
		if n > 0 {
			g.maxPages = n
		}
	}
}

func WithBackoff(d time.Duration) Option {
	return func(g *GoogleNearbySearchClient) { g.backoff = d }
}

func WithPageDelay(d time.Duration) Option {
	return func(g *GoogleNearbySearchClient) { g.pageDelay = d }
}

func NewGoogleNearbySearchClient(opts ...Option) *GoogleNearbySearchClient {
	c := &GoogleNearbySearchClient{
		session:     &http.Client{Timeout: 10 * time.Second},
		baseURL:     DefaultBaseURL,
		maxAttempts: DefaultMaxAttempts,
		maxPages:    DefaultMaxPages,
		backoff:     200 * time.Millisecond,
		pageDelay:   DefaultPageDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NearbySearch returns the places of the requested type within RadiusMeters of Center.
func (c *GoogleNearbySearchClient) NearbySearch(
	ctx context.Context,
	req ports.NearbySearchRequest,
) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "places.NearbySearch")(&err)

	if req.Credential == "" {
		return nil, fmt.Errorf("%w: credential is empty", ports.ErrRequestDenied)
	}
	if req.PlaceType == "" {
		return nil, fmt.Errorf("%w: place type is empty", ports.ErrInvalidRequest)
	}
	if req.RadiusMeters <= 0 {
		return nil, fmt.Errorf("%w: radius %d must be positive", ports.ErrInvalidRequest, req.RadiusMeters)
	}
	if err := req.Center.Validate(); err != nil {
		return nil, fmt.Errorf("%w: center: %v", ports.ErrInvalidRequest, err)
	}

	params := url.Values{}
	params.Set("location", req.Center.String())
	params.Set("radius", strconv.Itoa(req.RadiusMeters))
	params.Set("type", req.PlaceType)
	params.Set("key", req.Credential)

	var out []domain.Place
	for page := 1; page <= c.maxPages; page++ {
		decoded, err := c.doWithRetry(ctx, page > 1, func() (*http.Request, error) {
			return c.newRequest(ctx, params)
		})
		if err != nil {
			return nil, fmt.Errorf("nearby search %s page %d: %w", req.Center, page, err)
		}

		for _, r := range decoded.Results {
			out = append(out, r.toPlace())
		}

		if decoded.NextPageToken == "" {
			break
		}

		// Subsequent pages are addressed by the token alone.
		params = url.Values{}
		params.Set("pagetoken", decoded.NextPageToken)
		params.Set("key", req.Credential)

		if page < c.maxPages {
			if err := c.wait(ctx, c.pageDelay); err != nil {
				return nil, err
			}
		}
	}

	if out == nil {
		out = []domain.Place{}
	}
	return out, nil
}

func (c *GoogleNearbySearchClient) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ ports.PlaceSearcher = (*GoogleNearbySearchClient)(nil)
