package main

import (
	"net/http"

	"github.com/boraler/boraler-web/internal/backend"
	"github.com/boraler/boraler-web/internal/cep"
	"github.com/boraler/boraler-web/internal/geo"
	"github.com/boraler/boraler-web/internal/http/handlers/account"
	"github.com/boraler/boraler-web/internal/http/handlers/books"
	"github.com/boraler/boraler-web/internal/http/handlers/catalog"
	"github.com/boraler/boraler-web/internal/http/handlers/lookup"
	"github.com/boraler/boraler-web/internal/http/middleware"
	"github.com/boraler/boraler-web/internal/http/session"
	"github.com/boraler/boraler-web/internal/utils/response"
)

// Backend is every backend operation the routes need; *backend.Client
// satisfies it.
type Backend interface {
	account.Backend
	books.Backend
	catalog.Lister
}

var _ Backend = (*backend.Client)(nil)

// newRouter registers every route on a fresh ServeMux.
//
// Route table:
//
//	POST   /api/auth/login          → sign in, sets the session cookie
//	POST   /api/auth/signup         → create an account, sets the cookie
//	POST   /api/auth/logout         → expire the cookie
//	GET    /api/profile             → the signed-in user        (session)
//	PUT    /api/profile             → edit the signed-in user   (session)
//	GET    /api/books               → own listings              (session)
//	POST   /api/books               → new listing               (session)
//	PUT    /api/books/{id}          → edit a listing            (session)
//	DELETE /api/books/{id}          → remove a listing          (session)
//	GET    /api/catalog             → filtered community catalog (session)
//	GET    /api/lookup/cep/{code}   → address for a postal code
//	GET    /api/lookup/location     → city and state for coordinates
//	GET    /api/lookup/phone        → phone display mask
//	GET    /healthz                 → liveness
func newRouter(b Backend, addresses cep.Resolver, places geo.CityStateResolver, sessions *session.Manager) *http.ServeMux {
	auth := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireSession(sessions, h)
	}

	router := http.NewServeMux()

	router.HandleFunc("POST /api/auth/login", account.Login(b, sessions))
	router.HandleFunc("POST /api/auth/signup", account.Signup(b, sessions))
	router.HandleFunc("POST /api/auth/logout", account.Logout(sessions))
	router.HandleFunc("GET /api/profile", auth(account.GetProfile(b)))
	router.HandleFunc("PUT /api/profile", auth(account.UpdateProfile(b)))

	router.HandleFunc("GET /api/books", auth(books.List(b)))
	router.HandleFunc("POST /api/books", auth(books.Create(b)))
	router.HandleFunc("PUT /api/books/{id}", auth(books.Update(b)))
	router.HandleFunc("DELETE /api/books/{id}", auth(books.Delete(b)))

	router.HandleFunc("GET /api/catalog", auth(catalog.List(b, places)))

	router.HandleFunc("GET /api/lookup/cep/{code}", lookup.CEP(addresses))
	router.HandleFunc("GET /api/lookup/location", lookup.Location(places))
	router.HandleFunc("GET /api/lookup/phone", lookup.Phone())

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.OK())
	})

	return router
}
