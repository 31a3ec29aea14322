// ABOUTME: Declarative route table for the dev server API
// ABOUTME: Mounts every route on a chi router behind the shared middleware

package devserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Routes returns all API routes for registration.
func (s *Server) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/health", Handler: s.Health},

		// Login
		{Method: http.MethodPost, Path: "/api/login/generate-otp", Handler: s.GenerateOTP},
		{Method: http.MethodPost, Path: "/api/login/resend-otp", Handler: s.ResendOTP},
		{Method: http.MethodPost, Path: "/api/login/verify-otp", Handler: s.VerifyOTP},
		{Method: http.MethodPost, Path: "/api/logout", Handler: s.Logout},

		// Account
		{Method: http.MethodPost, Path: "/api/signup", Handler: s.Signup},
		{Method: http.MethodPut, Path: "/api/profile/edit", Handler: s.EditProfile},

		// Notifications
		{Method: http.MethodGet, Path: "/api/notifications", Handler: s.Notifications},
		{Method: http.MethodPost, Path: "/api/notifications/mark-read", Handler: s.MarkRead},
		{Method: http.MethodPost, Path: "/api/notifications/register-device", Handler: s.RegisterDevice},
	}
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(LogRequest)

	for _, route := range s.Routes() {
		r.Method(route.Method, route.Path, route.Handler)
	}
	r.NotFound(s.NotFound)
	r.MethodNotAllowed(s.NotFound)
	return r
}
