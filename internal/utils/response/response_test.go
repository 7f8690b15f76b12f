package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/boraler/boraler-web/internal/backend"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rr, http.StatusCreated, map[string]int{"id": 1}))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, rr.Body.String())
}

func TestUpstream(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"client error relayed", &backend.APIError{Status: 401, Message: "Senha incorreta"},
			http.StatusUnauthorized, `{"status":"error","error":"Senha incorreta"}`},
		{"wrapped client error", fmt.Errorf("login: %w", &backend.APIError{Status: 404, Message: "Usuário não encontrado"}),
			http.StatusNotFound, `{"status":"error","error":"Usuário não encontrado"}`},
		{"server error", &backend.APIError{Status: 500, Message: "Erro no login"},
			http.StatusBadGateway, `{"status":"error","error":"Erro no login"}`},
		{"transport", backend.ErrTransport,
			http.StatusBadGateway, `{"status":"error","error":"` + MessageRetry + `"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			Upstream(rr, tc.err)
			assert.Equal(t, tc.status, rr.Code)
			assert.JSONEq(t, tc.body, rr.Body.String())
		})
	}
}

func TestValidationError(t *testing.T) {
	type listing struct {
		Title      string   `validate:"required"`
		Objectives []string `validate:"min=1"`
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string { return strings.ToLower(f.Name) })

	err := v.Struct(listing{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	res := ValidationError(verrs)
	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "o campo title é obrigatório, Selecione ao menos um objetivo", res.Error)
}
