package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router mounts all endpoints. Registration, login, verification, and the
// health check are public; everything else requires a bearer token.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", s.handlePing)

	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Post("/verify", s.handleVerifyUpload)
		r.Get("/verify/{hash}", s.handleVerifyHash)
		r.Get("/stats", s.handleStats)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/me", s.handleMe)

			r.Post("/documents", s.handleUpload)
			r.Get("/documents", s.handleList)
			r.Get("/documents/{id}/proof", s.handleProof)
			r.Get("/documents/{id}/download", s.handleDownload)
			r.Get("/documents/{id}/attachment", s.handleAttachment)

			r.Get("/admin/login-history", s.handleLoginHistory)
		})
	})

	return r
}

func (s *HTTPServer) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
