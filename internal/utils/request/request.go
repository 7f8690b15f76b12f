// Package request holds the small parsing helpers shared by the handlers.
package request

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/boraler/boraler-web/internal/geo"
)

// ErrEmptyBody is returned by DecodeJSON when the body has no content.
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}
	return err
}

// Position reads the latitude and longitude query parameters. It returns
// nil, a "no capability" source, when either is missing, not a number
// (NaN included) or out of range, so geo.Locate reports
// geo.ErrLocationUnavailable.
func Position(r *http.Request) geo.PositionSource {
	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("latitude"), 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(q.Get("longitude"), 64)
	if err != nil {
		return nil
	}
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return nil
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil
	}
	return geo.Coordinates{Latitude: lat, Longitude: lon}
}
