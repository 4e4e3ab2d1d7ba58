package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/mukundrex/flight-mcp-server/config"
	"github.com/mukundrex/flight-mcp-server/internal/metrics"
	"github.com/mukundrex/flight-mcp-server/internal/telemetry"
)

const (
	tokenPath     = "/v1/security/oauth2/token"
	locationsPath = "/v1/reference-data/locations"
	airlinesPath  = "/v1/reference-data/airlines"
	offersPath    = "/v2/shopping/flight-offers"
)

// APIError is a non-2xx answer from the Amadeus API.
type APIError struct {
	Status int
	Code   int
	Title  string
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("amadeus: %d %s: %s", e.Status, e.Title, e.Detail)
	}
	return fmt.Sprintf("amadeus: status %d", e.Status)
}

type errorEnvelope struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

var errNoContent = errors.New("no matching records")

type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.Registry
}

// NewClient returns a client that authenticates with the OAuth2
// client-credentials grant and refreshes its token as needed.
func NewClient(cfg config.AmadeusConfig, m *metrics.Registry) *Client {
	base := strings.TrimRight(cfg.Host(), "/")
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	cc := clientcredentials.Config{
		ClientID:     cfg.APIKey,
		ClientSecret: cfg.APISecret,
		TokenURL:     base + tokenPath,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})
	httpClient := cc.Client(ctx)
	httpClient.Timeout = timeout

	if m == nil {
		m = metrics.Nop()
	}
	return &Client{baseURL: base, http: httpClient, metrics: m}
}

// FindLocations queries reference data by keyword. A lookup that matches
// nothing yields an empty slice and no error.
func (c *Client) FindLocations(ctx context.Context, keyword, subType string) ([]Location, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("subType", subType)

	var out struct {
		Data []Location `json:"data"`
	}
	if err := c.get(ctx, "locations", locationsPath, params, &out); err != nil {
		if errors.Is(err, errNoContent) {
			return []Location{}, nil
		}
		return nil, err
	}
	if out.Data == nil {
		return []Location{}, nil
	}
	return out.Data, nil
}

func (c *Client) FindAirlines(ctx context.Context, codes ...string) ([]Airline, error) {
	params := url.Values{}
	params.Set("airlineCodes", strings.Join(codes, ","))

	var out struct {
		Data []Airline `json:"data"`
	}
	if err := c.get(ctx, "airlines", airlinesPath, params, &out); err != nil {
		if errors.Is(err, errNoContent) {
			return []Airline{}, nil
		}
		return nil, err
	}
	if out.Data == nil {
		return []Airline{}, nil
	}
	return out.Data, nil
}

// SearchOffers runs a one-way flight-offers search. Failures are returned as is.
func (c *Client) SearchOffers(ctx context.Context, q OfferQuery) ([]FlightOffer, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	params.Set("adults", strconv.Itoa(q.Adults))
	if q.Max > 0 {
		params.Set("max", strconv.Itoa(q.Max))
	}

	var out struct {
		Data []FlightOffer `json:"data"`
	}
	if err := c.get(ctx, "flight_offers", offersPath, params, &out); err != nil {
		if errors.Is(err, errNoContent) {
			return []FlightOffer{}, nil
		}
		return nil, err
	}
	if out.Data == nil {
		return []FlightOffer{}, nil
	}
	return out.Data, nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) (err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "amadeus."+op)
	defer span.End()
	span.SetAttributes(attribute.String("amadeus.path", path))

	start := time.Now()
	status := "error"
	defer func() {
		c.metrics.VendorRequestDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
		if err != nil && !errors.Is(err, errNoContent) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/vnd.amadeus+json, application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("amadeus %s: %w", op, err)
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		return errNoContent
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}

	var env errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && len(env.Errors) > 0 {
		first := env.Errors[0]
		apiErr.Code = first.Code
		if first.Title != "" {
			apiErr.Title = first.Title
		}
		apiErr.Detail = first.Detail
	}
	return apiErr
}
