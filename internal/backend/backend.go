// Package backend is a typed client for the BoraLer REST backend, which
// owns authentication, user profiles and book listings.
//
// Every method issues exactly one request. Failures come in two kinds:
//
//   - *APIError: the backend answered with a non-2xx status. Message is the
//     backend's own "message" field, or a per-operation default.
//   - ErrTransport: the backend could not be reached or sent a body that
//     does not decode.
package backend

import (
	"bytes"
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

// DefaultBaseURL is the hosted BoraLer backend.
const DefaultBaseURL = "https://boralebackend.onrender.com"

// ErrTransport wraps network and decoding failures.
var ErrTransport = errors.New("backend: request failed")

// MaxResponseBytes caps how much of a backend response is read.
const MaxResponseBytes = 4 << 20

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message)
}

// Client talks to the backend. Create it with New.
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

// UserPayload is the body of UpsertUser. An empty ID creates an account;
// an empty Pass on update keeps the current password.
type UserPayload struct {
	ID            types.UserID     `json:"Id"`
	Name          string           `json:"Name"`
	Email         string           `json:"Email"`
	Pass          string           `json:"Pass"`
	State         string           `json:"State"`
	City          string           `json:"City"`
	Phone         string           `json:"Phone"`
	PersonType    types.PersonType `json:"PersonType"`
	PublicContact bool             `json:"PublicContact"`
	PostalCode    string           `json:"PostalCode"`
	Street        string           `json:"Street"`
	Number        string           `json:"Number"`
	Neighborhood  string           `json:"Neighborhood"`
}

// UserPayloadFrom copies a validated form record into an UpsertUser body.
func UserPayloadFrom(id types.UserID, r types.SignupRecord) UserPayload {
	return UserPayload{
		ID:            id,
		Name:          r.Name,
		Email:         r.Email,
		Pass:          r.Password,
		State:         r.State,
		City:          r.City,
		Phone:         r.Phone,
		PersonType:    r.PersonType,
		PublicContact: r.PublicContact,
		PostalCode:    r.PostalCode,
		Street:        r.Street,
		Number:        r.Number,
		Neighborhood:  r.Neighborhood,
	}
}

// BookPayload is the body of UpsertBook. A zero ID creates a listing.
type BookPayload struct {
	ID         int               `json:"Id,omitempty"`
	Title      string            `json:"Title"`
	Genre      string            `json:"Genre"`
	Author     string            `json:"Author"`
	Status     bool              `json:"Status"`
	Objectives []types.Objective `json:"Objectives"`
	IDUser     types.UserID      `json:"IdUser"`
}

// BookPayloadFrom copies a validated listing into an UpsertBook body.
func BookPayloadFrom(id int, owner types.UserID, in types.BookInput) BookPayload {
	return BookPayload{
		ID:         id,
		Title:      in.Title,
		Genre:      in.Genre,
		Author:     in.Author,
		Status:     in.Status,
		Objectives: in.Objectives,
		IDUser:     owner,
	}
}

// Login checks credentials and returns the account.
func (c *Client) Login(ctx context.Context, email, password string) (types.User, error) {
	q := url.Values{"email": {email}, "pass": {password}}
	var u types.User
	err := c.do(ctx, http.MethodGet, "/api/Login/Login?"+q.Encode(), nil, &u, "Erro no login")
	return u, err
}

// UpsertUser creates or updates an account.
func (c *Client) UpsertUser(ctx context.Context, p UserPayload) (types.User, error) {
	fallback := "Erro no cadastro"
	if p.ID != "" {
		fallback = "Erro ao salvar perfil"
	}
	var u types.User
	err := c.do(ctx, http.MethodPost, "/api/Login/UpsertUser", p, &u, fallback)
	return u, err
}

// GetUser fetches the account with the given id.
func (c *Client) GetUser(ctx context.Context, id types.UserID) (types.User, error) {
	q := url.Values{"userId": {string(id)}}
	var u types.User
	err := c.do(ctx, http.MethodGet, "/api/Login/GetUser?"+q.Encode(), nil, &u, "Erro ao buscar perfil")
	return u, err
}

// ListCatalog returns every visible listing with its owner projection.
func (c *Client) ListCatalog(ctx context.Context) ([]types.Book, error) {
	books := []types.Book{}
	err := c.do(ctx, http.MethodGet, "/api/Catalog/ListCatalogAsync", nil, &books, "Erro ao buscar livros")
	return books, err
}

// BooksByUser returns the listings owned by a user, hidden ones included.
func (c *Client) BooksByUser(ctx context.Context, id types.UserID) ([]types.Book, error) {
	q := url.Values{"userId": {string(id)}}
	books := []types.Book{}
	err := c.do(ctx, http.MethodGet, "/api/Book/GetBookByUser?"+q.Encode(), nil, &books, "Erro ao buscar livros")
	return books, err
}

// UpsertBook creates or updates a listing.
func (c *Client) UpsertBook(ctx context.Context, p BookPayload) error {
	return c.do(ctx, http.MethodPost, "/api/Book/UpsertBook", p, nil, "Erro ao salvar livro")
}

// DeleteBook removes a listing.
func (c *Client) DeleteBook(ctx context.Context, bookID int) error {
	q := url.Values{"bookId": {strconv.Itoa(bookID)}}
	return c.do(ctx, http.MethodDelete, "/api/Book/DeleteBook?"+q.Encode(), nil, nil, "Erro ao excluir o livro")
}

// do sends one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded response. fallback is the message used
// when an error response carries none.
func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: build %s %s: %w: %w", method, path, ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w: %w", method, path, ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return fmt.Errorf("backend: read %s %s: %w: %w", method, path, ErrTransport, err)
	}
	if len(raw) > MaxResponseBytes {
		return fmt.Errorf("backend: %s %s: response over %d bytes: %w", method, path, MaxResponseBytes, ErrTransport)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw, fallback)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: decode %s %s: %w: %w", method, path, ErrTransport, err)
	}
	return nil
}

// errorMessage extracts the backend's "message" field, if any.
func errorMessage(raw []byte, fallback string) string {
	var e struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &e) == nil && e.Message != "" {
		return e.Message
	}
	return fallback
}
