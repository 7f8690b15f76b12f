// Package lookup exposes the address, location and phone helpers the
// signup and profile forms call while the user types.
package lookup

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/boraler/boraler-web/internal/cep"
	"github.com/boraler/boraler-web/internal/geo"
	"github.com/boraler/boraler-web/internal/phone"
	"github.com/boraler/boraler-web/internal/utils/request"
	"github.com/boraler/boraler-web/internal/utils/response"
)

// Address is the body of a successful CEP lookup.
type Address struct {
	PostalCode   string `json:"postalCode"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// ─────────────────────────────────────────────────────────────────────────────
// CEP handles GET /api/lookup/cep/{code}
//
// The code may carry a mask ("01001-000"); non-digits are dropped before
// the lookup.
//
// Success response (200 OK):
//
//	{ "postalCode": "01001-000", "street": "Praça da Sé", "neighborhood": "Sé",
//	  "city": "São Paulo", "state": "SP" }
//
// Errors: 404 "CEP não encontrado", 502 when the service is unreachable.
// ─────────────────────────────────────────────────────────────────────────────
func CEP(resolver cep.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		digits, masked := cep.Normalize(r.PathValue("code"))

		addr, err := resolver.Resolve(r.Context(), digits)
		switch {
		case errors.Is(err, cep.ErrNotFound):
			response.WriteJSON(w, http.StatusNotFound, response.Message(cep.MessageNotFound))
			return
		case err != nil:
			slog.Error("cep lookup failed", slog.String("cep", digits), slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadGateway, response.Message(cep.MessageRetry))
			return
		}

		response.WriteJSON(w, http.StatusOK, Address{
			PostalCode:   masked,
			Street:       addr.Street,
			Neighborhood: addr.Neighborhood,
			City:         addr.City,
			State:        addr.State,
		})
	}
}

// Location handles GET /api/lookup/location?latitude=..&longitude=..
//
// 200 with a types.GeoLocation, 204 when no usable position was given,
// 502 when reverse geocoding failed.
func Location(resolver geo.CityStateResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loc, err := geo.Locate(r.Context(), request.Position(r), resolver)
		switch {
		case errors.Is(err, geo.ErrLocationUnavailable):
			w.WriteHeader(http.StatusNoContent)
			return
		case err != nil:
			slog.Warn("reverse geocoding failed", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadGateway, response.Message(response.MessageRetry))
			return
		}

		response.WriteJSON(w, http.StatusOK, loc)
	}
}

// Phone handles GET /api/lookup/phone?value=...
func Phone() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{
			"formatted": phone.Format(r.URL.Query().Get("value")),
		})
	}
}
