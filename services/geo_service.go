package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// GeoService is a thin passthrough to the AMap web service API.
type GeoService struct {
	Key     string
	BaseURL string
	Client  *http.Client
}

func NewGeoService(key, baseURL string, timeout time.Duration) *GeoService {
	return &GeoService{
		Key:     key,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

type Location struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

type GeocodeResult struct {
	Location         *Location              `json:"location"`
	FormattedAddress string                 `json:"formattedAddress"`
	Raw              map[string]interface{} `json:"raw"`
}

// parseLocation reads AMap's "lng,lat" string.
func parseLocation(raw string) *Location {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil
	}
	lng, err1 := cast.ToFloat64E(strings.TrimSpace(parts[0]))
	lat, err2 := cast.ToFloat64E(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return nil
	}
	return &Location{Lng: lng, Lat: lat}
}

func (s *GeoService) call(ctx context.Context, path string, query url.Values) (map[string]interface{}, error) {
	if strings.TrimSpace(s.Key) == "" {
		return nil, ServerError("map api key is not configured", nil)
	}
	query.Set("key", s.Key)
	query.Set("output", "JSON")
	endpoint := s.BaseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, ServerError("cannot build map request", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, Upstream(http.StatusBadGateway, "map provider unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, Upstream(resp.StatusCode, "map provider read failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, Upstream(resp.StatusCode, fmt.Sprintf("map provider HTTP %d", resp.StatusCode), nil)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, Upstream(resp.StatusCode, "map provider returned invalid JSON", err)
	}
	if cast.ToString(out["status"]) != "1" {
		info := cast.ToString(out["info"])
		code := cast.ToString(out["infocode"])
		zap.L().Warn("map provider rejected request", zap.String("path", path), zap.String("info", info), zap.String("infocode", code))
		return nil, Upstream(http.StatusBadGateway, fmt.Sprintf("map provider error: %s (%s)", info, code), nil)
	}
	return out, nil
}

func (s *GeoService) Geocode(ctx context.Context, address, city string) (GeocodeResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return GeocodeResult{}, BadRequest("address is required")
	}
	q := url.Values{}
	q.Set("address", address)
	if city = strings.TrimSpace(city); city != "" {
		q.Set("city", city)
	}
	raw, err := s.call(ctx, "/v3/geocode/geo", q)
	if err != nil {
		return GeocodeResult{}, err
	}

	result := GeocodeResult{Raw: raw}
	if list, ok := raw["geocodes"].([]interface{}); ok && len(list) > 0 {
		if first, ok := list[0].(map[string]interface{}); ok {
			result.Location = parseLocation(cast.ToString(first["location"]))
			result.FormattedAddress = cast.ToString(first["formatted_address"])
		}
	}
	if result.Location == nil {
		return GeocodeResult{}, NotFound("address could not be geocoded")
	}
	return result, nil
}

func (s *GeoService) Nearby(ctx context.Context, lng, lat float64, keywords string, radius int) (map[string]interface{}, error) {
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return nil, BadRequest("lng/lat out of range")
	}
	if radius <= 0 {
		radius = 1000
	}
	if radius > 50000 {
		radius = 50000
	}
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%.6f,%.6f", lng, lat))
	q.Set("radius", cast.ToString(radius))
	if keywords = strings.TrimSpace(keywords); keywords != "" {
		q.Set("keywords", keywords)
	}
	return s.call(ctx, "/v3/place/around", q)
}
