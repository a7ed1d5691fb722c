// Package weather resolves the visitor's city from their IP and fetches the
// current temperature and conditions for it. Public client IPs are looked up
// explicitly; for private or loopback clients the geolocation service sees
// the server's own address, which is then on the same network as the visitor.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/netip"
	"net/url"
	"strconv"

	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/utils"
)

// Offline is shown when any step of the lookup fails.
const Offline = "weather offline"

// Report is the current weather at the caller's location.
type Report struct {
	City      string  `json:"city"`
	TempC     int     `json:"temp_c"`
	Code      int     `json:"code"`
	Condition string  `json:"condition"`
	Latitude  float64 `json:"-"`
	Longitude float64 `json:"-"`
}

func (r Report) String() string {
	return fmt.Sprintf("%s / %d°C / %s", r.City, r.TempC, r.Condition)
}

// Classify buckets a WMO weather code.
func Classify(code int) string {
	switch {
	case code >= 80:
		return "rainy"
	case code >= 71:
		return "snowy"
	case code >= 61:
		return "rainy"
	case code >= 51:
		return "drizzle"
	case code >= 45:
		return "foggy"
	case code >= 3:
		return "cloudy"
	default:
		return "clear"
	}
}

type geoResponse struct {
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Error     bool    `json:"error"`
	Reason    string  `json:"reason"`
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

// Endpoints are the collaborator URLs.
type Endpoints struct {
	// Geo locates the address the request comes from.
	Geo string
	// GeoByIP locates a given address; %s is replaced by the IP. Empty
	// disables per-visitor lookups.
	GeoByIP string
	// Forecast is queried with latitude and longitude.
	Forecast string
}

// Client chains the geolocation and forecast lookups.
type Client struct {
	endpoints  Endpoints
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a client against the given endpoints. A nil httpClient
// uses a client without an overall timeout; the request context bounds it.
func NewClient(endpoints Endpoints, httpClient *http.Client, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = newHTTPClient()
	}
	return &Client{
		endpoints:  endpoints,
		httpClient: httpClient,
		logger:     log,
	}
}

// Fetch looks up the location of clientIP, then the forecast for it. There is
// no retry and nothing is cached.
func (c *Client) Fetch(ctx context.Context, clientIP string) (Report, error) {
	var geo geoResponse
	if err := c.getJSON(ctx, c.geoURL(clientIP), &geo); err != nil {
		return Report{}, fmt.Errorf("geolocation: %w", err)
	}
	if geo.Error {
		return Report{}, fmt.Errorf("geolocation: %s", geo.Reason)
	}

	var fc forecastResponse
	if err := c.getJSON(ctx, c.forecastQuery(geo.Latitude, geo.Longitude), &fc); err != nil {
		return Report{}, fmt.Errorf("forecast: %w", err)
	}

	return Report{
		City:      geo.City,
		TempC:     roundHalfUp(fc.Current.Temperature),
		Code:      fc.Current.WeatherCode,
		Condition: Classify(fc.Current.WeatherCode),
		Latitude:  geo.Latitude,
		Longitude: geo.Longitude,
	}, nil
}

// roundHalfUp rounds .5 toward positive infinity, so -3.5 becomes -3.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Line returns the widget text with the report it came from, or Offline and
// nil after logging why the lookup failed.
func (c *Client) Line(ctx context.Context, clientIP string) (string, *Report) {
	report, err := c.Fetch(ctx, clientIP)
	if err != nil {
		c.logger.Warn("weather lookup failed",
			logger.String("client_ip", clientIP),
			logger.Error(err))
		return Offline, nil
	}
	return report.String(), &report
}

// geoURL picks the per-IP endpoint for public addresses. Private, loopback
// and unparsable addresses use the plain endpoint.
func (c *Client) geoURL(clientIP string) string {
	if c.endpoints.GeoByIP == "" {
		return c.endpoints.Geo
	}
	addr, err := netip.ParseAddr(clientIP)
	if err != nil {
		return c.endpoints.Geo
	}
	addr = addr.Unmap().WithZone("")
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return c.endpoints.Geo
	}
	return fmt.Sprintf(c.endpoints.GeoByIP, url.PathEscape(addr.String()))
}

func (c *Client) forecastQuery(lat, lon float64) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current", "temperature_2m,weather_code")
	q.Set("temperature_unit", "celsius")
	return c.endpoints.Forecast + "?" + q.Encode()
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer utils.DrainClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
