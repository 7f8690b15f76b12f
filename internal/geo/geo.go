// Package geo resolves coordinates to a Brazilian city and state using the
// BigDataCloud reverse-geocoding API.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/boraler/boraler-web/internal/types"
)

// DefaultBaseURL is the public BigDataCloud endpoint.
const DefaultBaseURL = "https://api.bigdatacloud.net"

var (
	// ErrLocationUnavailable means no position could be obtained. It is an
	// expected outcome: callers fall back to "no location" silently.
	ErrLocationUnavailable = errors.New("geo: location unavailable")

	// ErrLookupFailure means the reverse-geocoding call itself failed.
	ErrLookupFailure = errors.New("geo: reverse geocoding failed")
)

// stateAbbreviations maps the full Portuguese name of each of the 26
// states and the federal district to its two-letter code.
var stateAbbreviations = map[string]string{
	"Acre":                "AC",
	"Alagoas":             "AL",
	"Amapá":               "AP",
	"Amazonas":            "AM",
	"Bahia":               "BA",
	"Ceará":               "CE",
	"Distrito Federal":    "DF",
	"Espírito Santo":      "ES",
	"Goiás":               "GO",
	"Maranhão":            "MA",
	"Mato Grosso":         "MT",
	"Mato Grosso do Sul":  "MS",
	"Minas Gerais":        "MG",
	"Pará":                "PA",
	"Paraíba":             "PB",
	"Paraná":              "PR",
	"Pernambuco":          "PE",
	"Piauí":               "PI",
	"Rio de Janeiro":      "RJ",
	"Rio Grande do Norte": "RN",
	"Rio Grande do Sul":   "RS",
	"Rondônia":            "RO",
	"Roraima":             "RR",
	"Santa Catarina":      "SC",
	"São Paulo":           "SP",
	"Sergipe":             "SE",
	"Tocantins":           "TO",
}

// StateAbbreviation returns the two-letter code for a full state name.
func StateAbbreviation(name string) (string, bool) {
	abbr, ok := stateAbbreviations[name]
	return abbr, ok
}

// CityStateResolver reverse geocodes a coordinate pair.
type CityStateResolver interface {
	ResolveCityState(ctx context.Context, lat, lon float64) (city, state string, err error)
}

// Client talks to BigDataCloud. Create it with New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for baseURL (DefaultBaseURL when empty). A nil
// httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type reverseGeocodeResponse struct {
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
}

// ResolveCityState returns the city (falling back to the locality) and the
// state abbreviation. When the state name is not in the table the raw
// name is returned instead.
func (c *Client) ResolveCityState(ctx context.Context, lat, lon float64) (string, string, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("localityLanguage", "pt")

	endpoint := c.baseURL + "/data/reverse-geocode-client?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", "", fmt.Errorf("geo.ResolveCityState: build request: %w: %w", ErrLookupFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("geo.ResolveCityState: %w: %w", ErrLookupFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", "", fmt.Errorf("geo.ResolveCityState: status %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(body)), ErrLookupFailure)
	}

	var data reverseGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", "", fmt.Errorf("geo.ResolveCityState: decode: %w: %w", ErrLookupFailure, err)
	}

	city := data.City
	if city == "" {
		city = data.Locality
	}
	state, ok := StateAbbreviation(data.PrincipalSubdivision)
	if !ok {
		state = data.PrincipalSubdivision
	}
	return city, state, nil
}

// PositionSource is whatever the platform offers to obtain the user's
// coordinates. It returns an error when it declines or has no capability.
type PositionSource interface {
	Position(ctx context.Context) (lat, lon float64, err error)
}

// Coordinates is a PositionSource with a fixed, already known position.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Position implements PositionSource.
func (c Coordinates) Position(context.Context) (float64, float64, error) {
	return c.Latitude, c.Longitude, nil
}

// Locate obtains a position from source and reverse geocodes it.
// A nil source, or one that fails, yields ErrLocationUnavailable.
func Locate(ctx context.Context, source PositionSource, resolver CityStateResolver) (types.GeoLocation, error) {
	if source == nil {
		return types.GeoLocation{}, ErrLocationUnavailable
	}
	lat, lon, err := source.Position(ctx)
	if err != nil {
		return types.GeoLocation{}, fmt.Errorf("geo.Locate: %w: %w", ErrLocationUnavailable, err)
	}

	city, state, err := resolver.ResolveCityState(ctx, lat, lon)
	if err != nil {
		return types.GeoLocation{}, err
	}

	return types.GeoLocation{Latitude: lat, Longitude: lon, City: city, State: state}, nil
}
