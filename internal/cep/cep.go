// Package cep resolves Brazilian postal codes (CEP) to addresses using the
// ViaCEP web service.
//
// Callers must tell two failures apart:
//
//   - ErrNotFound:  the code does not exist. Show MessageNotFound.
//   - ErrTransport: the service could not be reached or answered with
//     something unexpected. Show MessageRetry.
package cep

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/boraler/boraler-web/internal/types"
)

// DefaultBaseURL is the public ViaCEP endpoint.
const DefaultBaseURL = "https://viacep.com.br"

// Length is the number of digits in a CEP.
const Length = 8

var (
	ErrNotFound  = errors.New("cep: not found")
	ErrTransport = errors.New("cep: lookup failed")
)

// User-facing messages for the two failure kinds.
const (
	MessageNotFound = "CEP não encontrado"
	MessageRetry    = "Não foi possível consultar o CEP. Tente novamente."
)

// Resolver turns an 8-digit code into an address.
type Resolver interface {
	Resolve(ctx context.Context, code string) (types.AddressLookupResult, error)
}

// Normalize strips non-digits from raw and truncates the result to 8
// digits. masked is the display form, with a hyphen after the fifth digit
// once there is something to put after it.
func Normalize(raw string) (digits, masked string) {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() == Length {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits = b.String()
	if len(digits) > 5 {
		return digits, digits[:5] + "-" + digits[5:]
	}
	return digits, digits
}

// Client talks to ViaCEP. The zero value is not usable; call New.
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

// sentinel decodes ViaCEP's "erro" marker, which older deployments send
// as a JSON boolean and current ones as the string "true".
type sentinel bool

func (s *sentinel) UnmarshalJSON(data []byte) error {
	v := string(bytes.Trim(data, `"`))
	*s = sentinel(v == "true")
	return nil
}

type viaCEPResponse struct {
	Logradouro string   `json:"logradouro"`
	Bairro     string   `json:"bairro"`
	Localidade string   `json:"localidade"`
	UF         string   `json:"uf"`
	Erro       sentinel `json:"erro"`
}

// Resolve looks up an 8-digit code. Anything that is not exactly eight
// digits is reported as ErrNotFound without contacting the service.
func (c *Client) Resolve(ctx context.Context, code string) (types.AddressLookupResult, error) {
	if !valid(code) {
		return types.AddressLookupResult{}, ErrNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ws/"+code+"/json/", nil)
	if err != nil {
		return types.AddressLookupResult{}, fmt.Errorf("cep.Resolve: build request: %w: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return types.AddressLookupResult{}, fmt.Errorf("cep.Resolve: %w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		// ViaCEP answers 400 for codes it considers malformed.
		return types.AddressLookupResult{}, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return types.AddressLookupResult{}, fmt.Errorf("cep.Resolve: status %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(body)), ErrTransport)
	}

	var data viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return types.AddressLookupResult{}, fmt.Errorf("cep.Resolve: decode: %w: %w", ErrTransport, err)
	}
	if data.Erro {
		return types.AddressLookupResult{}, ErrNotFound
	}

	return types.AddressLookupResult{
		Street:       data.Logradouro,
		Neighborhood: data.Bairro,
		City:         data.Localidade,
		State:        data.UF,
	}, nil
}

func valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
