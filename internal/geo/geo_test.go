package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGeocoder answers every request with status and body. The returned
// func reports the URL of the last request received.
func fakeGeocoder(t *testing.T, status int, body string) (*httptest.Server, func() *url.URL) {
	t.Helper()
	var (
		mu   sync.Mutex
		last *url.URL
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		last = r.URL
		mu.Unlock()
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, func() *url.URL {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func TestStateTableIsComplete(t *testing.T) {
	assert.Len(t, stateAbbreviations, 27)

	abbr, ok := StateAbbreviation("São Paulo")
	assert.True(t, ok)
	assert.Equal(t, "SP", abbr)

	abbr, ok = StateAbbreviation("Distrito Federal")
	assert.True(t, ok)
	assert.Equal(t, "DF", abbr)

	_, ok = StateAbbreviation("Buenos Aires")
	assert.False(t, ok)
}

func TestResolveCityState(t *testing.T) {
	srv, last := fakeGeocoder(t, http.StatusOK,
		`{"city":"Campinas","locality":"Barão Geraldo","principalSubdivision":"São Paulo"}`)

	city, state, err := New(srv.URL, srv.Client()).ResolveCityState(context.Background(), -22.9, -47.06)
	require.NoError(t, err)
	assert.Equal(t, "Campinas", city)
	assert.Equal(t, "SP", state)

	u := last()
	require.NotNil(t, u)
	assert.Equal(t, "/data/reverse-geocode-client", u.Path)
	assert.Equal(t, "-22.9", u.Query().Get("latitude"))
	assert.Equal(t, "-47.06", u.Query().Get("longitude"))
	assert.Equal(t, "pt", u.Query().Get("localityLanguage"))
}

func TestResolveCityStateFallbacks(t *testing.T) {
	srv, _ := fakeGeocoder(t, http.StatusOK,
		`{"city":"","locality":"Vila Velha","principalSubdivision":"Provincia Desconhecida"}`)

	city, state, err := New(srv.URL, srv.Client()).ResolveCityState(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Vila Velha", city)
	assert.Equal(t, "Provincia Desconhecida", state)
}

func TestResolveCityStateFailure(t *testing.T) {
	srv, _ := fakeGeocoder(t, http.StatusTooManyRequests, `{"description":"quota"}`)
	_, _, err := New(srv.URL, srv.Client()).ResolveCityState(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrLookupFailure)

	_, _, err = New("http://127.0.0.1:1", nil).ResolveCityState(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrLookupFailure)
}

type deniedSource struct{}

func (deniedSource) Position(context.Context) (float64, float64, error) {
	return 0, 0, errors.New("user denied geolocation")
}

type stubResolver struct {
	city, state string
	err         error
}

func (s stubResolver) ResolveCityState(context.Context, float64, float64) (string, string, error) {
	return s.city, s.state, s.err
}

func TestLocate(t *testing.T) {
	loc, err := Locate(context.Background(), Coordinates{Latitude: -23.5, Longitude: -46.6},
		stubResolver{city: "São Paulo", state: "SP"})
	require.NoError(t, err)
	assert.Equal(t, -23.5, loc.Latitude)
	assert.Equal(t, "São Paulo", loc.City)
	assert.Equal(t, "SP", loc.State)
}

func TestLocateUnavailable(t *testing.T) {
	_, err := Locate(context.Background(), nil, stubResolver{})
	assert.ErrorIs(t, err, ErrLocationUnavailable)

	_, err = Locate(context.Background(), deniedSource{}, stubResolver{})
	assert.ErrorIs(t, err, ErrLocationUnavailable)
	assert.NotErrorIs(t, err, ErrLookupFailure)
}

func TestLocatePropagatesLookupFailure(t *testing.T) {
	_, err := Locate(context.Background(), Coordinates{}, stubResolver{err: ErrLookupFailure})
	assert.ErrorIs(t, err, ErrLookupFailure)
}
