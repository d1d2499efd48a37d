package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dberzins/docshelf/internal/common"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{Flash: popFlash(w, r)}
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error(r.Context(), "render index failed", "error", err)
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	key := r.FormValue("key")
	password := r.FormValue("password")
	confirm := r.FormValue("confirmPassword")

	if password != confirm {
		s.redirectWithFlash(w, r, "/", "Passwords do not match.")
		return
	}

	err := s.accounts.Register(r.Context(), key, password)
	switch {
	case err == nil:
		s.redirectWithFlash(w, r, "/", "Signup successful! You can now login.")
	case errors.Is(err, common.ErrDuplicateKey):
		s.redirectWithFlash(w, r, "/", "Key already exists. Choose a different one.")
	default:
		s.logger.Error(r.Context(), "signup failed", "key", key, "error", err)
		s.redirectWithFlash(w, r, "/", "Signup failed. Try again later.")
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	key := r.FormValue("key")
	password := r.FormValue("password")

	token, err := s.accounts.Login(r.Context(), key, password)
	if err != nil {
		s.redirectWithFlash(w, r, "/", "Invalid credentials.")
		return
	}

	setSessionCookie(w, token, s.accounts.SessionTTL())
	s.redirectWithFlash(w, r, "/dashboard", "Login successful!")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := s.accounts.Logout(r.Context(), cookie.Value); err != nil {
			s.logger.Error(r.Context(), "logout failed", "error", err)
		}
	}
	clearSessionCookie(w)
	s.redirectWithFlash(w, r, "/", "You have been logged out.")
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	key := accountKeyFrom(r.Context())
	data := dashboardData{
		Flash:     popFlash(w, r),
		User:      key,
		Documents: s.documents.List(r.Context(), key),
	}
	if err := dashboardTmpl.Execute(w, data); err != nil {
		s.logger.Error(r.Context(), "render dashboard failed", "error", err)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	key := accountKeyFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.redirectWithFlash(w, r, "/dashboard", "No file selected.")
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if filename == "" {
		s.redirectWithFlash(w, r, "/dashboard", "Invalid filename.")
		return
	}

	err = s.documents.Upload(r.Context(), key, filename, file)
	switch {
	case err == nil:
		s.redirectWithFlash(w, r, "/dashboard", fmt.Sprintf("File '%s' uploaded successfully!", filename))
	case errors.Is(err, common.ErrBlobConflict):
		s.redirectWithFlash(w, r, "/dashboard", fmt.Sprintf("A file named '%s' already exists.", filename))
	default:
		s.redirectWithFlash(w, r, "/dashboard", "Upload failed. Try again later.")
	}
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	filename := sanitizeFilename(chi.URLParam(r, "filename"))
	if filename == "" {
		s.redirectWithFlash(w, r, "/dashboard", "File not found.")
		return
	}

	rc, err := s.documents.View(r.Context(), filename)
	if err != nil {
		s.redirectWithFlash(w, r, "/dashboard", "File not found.")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Error(r.Context(), "streaming blob failed", "filename", filename, "error", err)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := accountKeyFrom(r.Context())

	filename := sanitizeFilename(chi.URLParam(r, "filename"))
	if filename == "" {
		s.redirectWithFlash(w, r, "/dashboard", "File not found.")
		return
	}

	if err := s.documents.Delete(r.Context(), key, filename); err != nil {
		s.redirectWithFlash(w, r, "/dashboard", "Delete failed. Try again later.")
		return
	}

	s.redirectWithFlash(w, r, "/dashboard", fmt.Sprintf("File '%s' has been deleted successfully.", filename))
}
