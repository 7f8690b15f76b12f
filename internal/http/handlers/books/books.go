// Package books contains the HTTP handlers for the signed-in user's own
// listings: list, create, edit and delete.
//
// All routes sit behind middleware.RequireSession, so the owner id is
// always taken from the session and never from the request body.
package books

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/boraler/boraler-web/internal/backend"
	"github.com/boraler/boraler-web/internal/http/middleware"
	"github.com/boraler/boraler-web/internal/http/session"
	"github.com/boraler/boraler-web/internal/types"
	"github.com/boraler/boraler-web/internal/utils/request"
	"github.com/boraler/boraler-web/internal/utils/response"
	"github.com/boraler/boraler-web/internal/validation"
	"github.com/go-playground/validator/v10"
)

// Backend is the part of backend.Client the book handlers use.
type Backend interface {
	BooksByUser(ctx context.Context, id types.UserID) ([]types.Book, error)
	UpsertBook(ctx context.Context, p backend.BookPayload) error
	DeleteBook(ctx context.Context, bookID int) error
}

const (
	MessageCreated = "Livro cadastrado com sucesso!"
	MessageUpdated = "Livro atualizado com sucesso!"
	MessageDeleted = "Livro removido com sucesso!"
	messageBadID   = "id inválido: deve ser um número inteiro positivo"
)

// Result is the success body of the write operations.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func owner(w http.ResponseWriter, r *http.Request) (types.UserID, bool) {
	id, ok := session.FromContext(r.Context())
	if !ok {
		response.WriteJSON(w, http.StatusUnauthorized, response.Message(middleware.MessageLoginRequired))
	}
	return id, ok
}

// bookID parses the {id} path segment.
func bookID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		response.WriteJSON(w, http.StatusBadRequest, response.Message(messageBadID))
		return 0, false
	}
	return id, true
}

// decodeInput reads and validates a listing, writing a 400 on failure.
func decodeInput(w http.ResponseWriter, r *http.Request) (types.BookInput, bool) {
	var in types.BookInput
	if err := request.DecodeJSON(r, &in); err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return in, false
	}

	if err := validation.ValidateBook(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verrs))
		} else {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		}
		return in, false
	}
	return in, true
}

// ─────────────────────────────────────────────────────────────────────────────
// List handles GET /api/books
//
// Success response (200 OK): the owner's listings, [] when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func List(b Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := owner(w, r)
		if !ok {
			return
		}

		list, err := b.BooksByUser(r.Context(), id)
		if err != nil {
			slog.Error("listing own books failed", slog.String("user_id", string(id)), slog.String("error", err.Error()))
			response.Upstream(w, err)
			return
		}
		if list == nil {
			list = []types.Book{}
		}

		response.WriteJSON(w, http.StatusOK, list)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Create handles POST /api/books
//
// Request body (JSON):
//
//	{ "title": "Dom Casmurro", "genre": "Romance", "author": "Machado de Assis",
//	  "objectives": ["Donation"], "status": true }
//
// Success response (201 Created): Result.
// Errors: 400 validation, 4xx relayed from the backend, 502.
// ─────────────────────────────────────────────────────────────────────────────
func Create(b Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := owner(w, r)
		if !ok {
			return
		}
		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		if err := b.UpsertBook(r.Context(), backend.BookPayloadFrom(0, id, in)); err != nil {
			slog.Error("creating book failed", slog.String("user_id", string(id)), slog.String("error", err.Error()))
			response.Upstream(w, err)
			return
		}

		slog.Info("book created", slog.String("user_id", string(id)), slog.String("title", in.Title))
		response.WriteJSON(w, http.StatusCreated, Result{Status: response.StatusOK, Message: MessageCreated})
	}
}

// Update handles PUT /api/books/{id}. Same body as Create.
func Update(b Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := owner(w, r)
		if !ok {
			return
		}
		book, ok := bookID(w, r)
		if !ok {
			return
		}
		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		if err := b.UpsertBook(r.Context(), backend.BookPayloadFrom(book, id, in)); err != nil {
			slog.Error("updating book failed", slog.Int("book_id", book), slog.String("error", err.Error()))
			response.Upstream(w, err)
			return
		}

		slog.Info("book updated", slog.Int("book_id", book))
		response.WriteJSON(w, http.StatusOK, Result{Status: response.StatusOK, Message: MessageUpdated})
	}
}

// Delete handles DELETE /api/books/{id}.
func Delete(b Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := owner(w, r); !ok {
			return
		}
		book, ok := bookID(w, r)
		if !ok {
			return
		}

		if err := b.DeleteBook(r.Context(), book); err != nil {
			slog.Error("deleting book failed", slog.Int("book_id", book), slog.String("error", err.Error()))
			response.Upstream(w, err)
			return
		}

		slog.Info("book deleted", slog.Int("book_id", book))
		response.WriteJSON(w, http.StatusOK, Result{Status: response.StatusOK, Message: MessageDeleted})
	}
}
