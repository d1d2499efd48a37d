// Package httpapi is the browser-facing surface: signup and login on the
// index page, a dashboard listing the caller's documents, and the
// upload/view/delete routes. Authentication rides in a session cookie.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dberzins/docshelf/internal/logging"
	"github.com/dberzins/docshelf/internal/server/services"
)

const (
	sessionCookieName = "docshelf_session"
	flashCookieName   = "docshelf_flash"
)

type Server struct {
	accounts  *services.AccountService
	documents *services.DocumentService
	logger    logging.Logger
}

func NewServer(accounts *services.AccountService, documents *services.DocumentService, logger logging.Logger) *Server {
	return &Server{accounts: accounts, documents: documents, logger: logger}
}

// Routes builds the router. File operations sit behind requireAuth; the
// index and the auth endpoints do not.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Post("/signup", s.handleSignup)
	r.Post("/login", s.handleLogin)
	r.Get("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/dashboard", s.handleDashboard)
		r.Post("/upload", s.handleUpload)
		r.Get("/view/{filename}", s.handleView)
		r.Post("/delete/{filename}", s.handleDelete)
	})

	return r
}
