// Package catalog contains the handler for the community catalog page.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/boraler/boraler-web/internal/catalog"
	"github.com/boraler/boraler-web/internal/geo"
	"github.com/boraler/boraler-web/internal/types"
	"github.com/boraler/boraler-web/internal/utils/request"
	"github.com/boraler/boraler-web/internal/utils/response"
)

// Lister fetches the full catalog.
type Lister interface {
	ListCatalog(ctx context.Context) ([]types.Book, error)
}

// Page is the catalog response body.
type Page struct {
	Books        []types.Book `json:"books"`
	Cities       []string     `json:"cities"`
	SelectedCity string       `json:"selectedCity"`
	Count        int          `json:"count"`
}

func parseObjectives(values []string) ([]types.Objective, error) {
	out := make([]types.Objective, 0, len(values))
	for _, v := range values {
		o := types.Objective(v)
		known := false
		for _, k := range types.Objectives {
			if k == o {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("objetivo desconhecido: %q", v)
		}
		out = append(out, o)
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// List handles GET /api/catalog
//
// Query parameters:
//
//	q           free text matched against title, genre, author and owner
//	objective   repeatable: Exchange, Donation, Loan
//	city        "<city>-<state>" key, or "all"
//	latitude,
//	longitude   optional; pre-select the visitor's city when city is absent
//
// Success response (200 OK): Page. The cities list is always derived from
// the whole catalog, so the select keeps every option while filtering.
// ─────────────────────────────────────────────────────────────────────────────
func List(books Lister, resolver geo.CityStateResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		objectives, err := parseObjectives(q["objective"])
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		all, err := books.ListCatalog(r.Context())
		if err != nil {
			slog.Error("listing catalog failed", slog.String("error", err.Error()))
			response.Upstream(w, err)
			return
		}

		cities := catalog.Cities(all)
		criteria := catalog.Criteria{
			Query:      q.Get("q"),
			Objectives: objectives,
			City:       q.Get("city"),
		}
		if !q.Has("city") {
			criteria.City = locatedCity(r, resolver, cities)
		}
		criteria = criteria.Normalize()

		visible := catalog.Apply(all, criteria)
		for i := range visible {
			visible[i] = catalog.PublicView(visible[i])
		}

		response.WriteJSON(w, http.StatusOK, Page{
			Books:        visible,
			Cities:       cities,
			SelectedCity: criteria.City,
			Count:        len(visible),
		})
	}
}

// locatedCity returns the visitor's city key when it is one of cities.
func locatedCity(r *http.Request, resolver geo.CityStateResolver, cities []string) string {
	loc, err := geo.Locate(r.Context(), request.Position(r), resolver)
	switch {
	case errors.Is(err, geo.ErrLocationUnavailable):
		return ""
	case err != nil:
		slog.Warn("reverse geocoding failed, serving all cities", slog.String("error", err.Error()))
		return ""
	}

	key := loc.City + "-" + loc.State
	if !catalog.Contains(cities, key) {
		return ""
	}
	return key
}
