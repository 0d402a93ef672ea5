package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"shopwise_backend/platform/config"
	"shopwise_backend/platform/logger"
)

const nominatimURL = "https://nominatim.openstreetmap.org/search"

type Service struct {
	client      *http.Client
	countryCode string
	log         *logger.Logger
}

func NewService(cfg config.GeocodeConfig, log *logger.Logger) *Service {
	return &Service{
		client:      &http.Client{Timeout: 5 * time.Second},
		countryCode: cfg.GetGeocodeCountryCode(),
		log:         log,
	}
}

func (s *Service) SearchPlace(ctx context.Context, query string) ([]PlaceSuggestion, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("limit", "5")
	if s.countryCode != "" {
		params.Add("countrycodes", s.countryCode)
	}

	reqURL := fmt.Sprintf("%s?%s", nominatimURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "ShopWise/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("nominatim request failed", "error", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("nominatim upstream error", "status", resp.StatusCode)
		return nil, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var rawResults []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&rawResults); err != nil {
		s.log.Error("failed to decode nominatim payload", "error", err)
		return nil, err
	}

	suggestions := make([]PlaceSuggestion, 0, len(rawResults))
	for _, raw := range rawResults {
		suggestion, ok := buildSuggestion(raw)
		if !ok {
			continue
		}

		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

func buildSuggestion(raw nominatimResponse) (PlaceSuggestion, bool) {
	lat, err := strconv.ParseFloat(raw.Lat, 64)
	if err != nil {
		return PlaceSuggestion{}, false
	}
	lon, err := strconv.ParseFloat(raw.Lon, 64)
	if err != nil {
		return PlaceSuggestion{}, false
	}
	if raw.DisplayName == "" {
		return PlaceSuggestion{}, false
	}

	return PlaceSuggestion{
		Label:    raw.DisplayName,
		Province: raw.Address.State,
		District: raw.Address.County,
		Sector:   pickSector(raw.Address),
		Village:  raw.Address.Village,
		Lat:      lat,
		Lon:      lon,
	}, true
}

func pickSector(address nominatimAddress) string {
	if address.City != "" {
		return address.City
	}
	if address.Town != "" {
		return address.Town
	}
	if address.Suburb != "" {
		return address.Suburb
	}
	if address.Municipality != "" {
		return address.Municipality
	}
	return address.Hamlet
}
