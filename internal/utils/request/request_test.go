package request

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/boraler/boraler-web/internal/geo"
	"github.com/stretchr/testify/assert"
)

func TestDecodeJSON(t *testing.T) {
	var v struct{ Name string }

	err := DecodeJSON(httptest.NewRequest("POST", "/", strings.NewReader("")), &v)
	assert.ErrorIs(t, err, ErrEmptyBody)

	err = DecodeJSON(httptest.NewRequest("POST", "/", strings.NewReader("{")), &v)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyBody)

	err = DecodeJSON(httptest.NewRequest("POST", "/", strings.NewReader(`{"Name":"Ana"}`)), &v)
	assert.NoError(t, err)
	assert.Equal(t, "Ana", v.Name)
}

func TestPosition(t *testing.T) {
	src := Position(httptest.NewRequest("GET", "/?latitude=-23.55&longitude=-46.63", nil))
	assert.Equal(t, geo.Coordinates{Latitude: -23.55, Longitude: -46.63}, src)

	for _, target := range []string{"/", "/?latitude=1", "/?latitude=x&longitude=2", "/?latitude=91&longitude=0",
		"/?latitude=NaN&longitude=NaN", "/?latitude=0&longitude=nan", "/?latitude=Inf&longitude=0"} {
		assert.Nil(t, Position(httptest.NewRequest("GET", target, nil)), target)
	}
}
