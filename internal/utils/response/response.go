// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// Error responses always share one shape, so the front end can show the
// message without knowing which endpoint produced it.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/boraler/boraler-web/internal/backend"
	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
//	{ "status": "error", "error": "Por favor, preencha o e-mail" }
//
// Success responses may return any JSON shape.
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// MessageRetry is the generic text shown when an upstream call failed.
const MessageRetry = "Ocorreu um erro. Tente novamente."

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK is the envelope for success responses that carry no data.
func OK() Response {
	return Response{Status: StatusOK}
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Message(err.Error())
}

// Message builds an error Response from a ready-made user-facing text.
func Message(msg string) Response {
	return Response{Status: StatusError, Error: msg}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts the go-playground/validator field errors into a
// single human-readable Response, joined with ", ".
//
//	{ "status": "error", "error": "Selecione ao menos um objetivo" }
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch {
		case e.Field() == "objectives" && e.ActualTag() == "min":
			errMessages = append(errMessages, "Selecione ao menos um objetivo")
		case e.ActualTag() == "required":
			errMessages = append(errMessages,
				fmt.Sprintf("o campo %s é obrigatório", e.Field()))
		case e.ActualTag() == "oneof":
			errMessages = append(errMessages,
				fmt.Sprintf("o valor %v não é permitido em %s", e.Value(), e.Field()))
		case e.ActualTag() == "email":
			errMessages = append(errMessages,
				fmt.Sprintf("o campo %s deve ser um e-mail válido", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("o campo %s é inválido", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Upstream writes the response for a failed backend call.
//
//   - *backend.APIError with a 4xx status: the same status and the
//     backend's message, so "wrong password" reaches the user verbatim.
//   - *backend.APIError with any other status: 502 with the message.
//   - anything else (transport failure): 502 with MessageRetry.
//
// ─────────────────────────────────────────────────────────────────────────────
func Upstream(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status > 499 {
			status = http.StatusBadGateway
		}
		WriteJSON(w, status, Message(apiErr.Message))
		return
	}
	WriteJSON(w, http.StatusBadGateway, Message(MessageRetry))
}
