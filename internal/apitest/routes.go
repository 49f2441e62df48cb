package apitest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dheerendra45/news-analyzer/internal/middleware"
)

// Handler returns the router serving the API under /api.
//
// Routes:
//
//	POST   /api/auth/login                 → login
//	POST   /api/auth/register              → register
//	POST   /api/auth/admin/register        → registerAdmin (domain checked)
//	GET    /api/auth/me                    → me (user)
//	POST   /api/auth/admin/create          → createAdmin (admin)
//	POST   /api/auth/upload/{image,pdf}    → upload (admin)
//	       /api/news, /api/reports         → list/get public, CRUD + status admin
//	       /api/intelligence-cards         → list/get/landing/featured/stats
//	                                         public, CRUD + toggles admin
//
// Middleware chain: request logging, injected failures, bearer auth.
// JSON write endpoints additionally enforce application/json bodies.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestLogging(s.log))

	jsonOnly := chiMiddleware.AllowContentType("application/json")

	r.Route("/api", func(r chi.Router) {
		r.Use(s.injectFailures)
		r.Use(middleware.BearerAuth(s.tokens))

		r.Route("/auth", func(r chi.Router) {
			r.With(jsonOnly).Post("/login", s.login)
			r.With(jsonOnly).Post("/register", s.register)
			r.With(jsonOnly).Post("/admin/register", s.registerAdmin)
			r.With(middleware.RequireUser).Get("/me", s.me)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.With(jsonOnly).Post("/admin/create", s.createAdmin)
				r.Post("/upload/image", s.uploadImage)
				r.Post("/upload/pdf", s.uploadPDF)
			})
		})

		r.Route("/news", func(r chi.Router) {
			r.Get("/", s.listNews)
			r.Get("/categories/list", s.newsCategories)
			r.Get("/{id}", s.getNews)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.With(jsonOnly).Post("/", s.createNews)
				r.With(jsonOnly).Put("/{id}", s.updateNews)
				r.Delete("/{id}", s.deleteNews)
				r.Patch("/{id}/status", s.toggleNewsStatus)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", s.listReports)
			r.Get("/tags/list", s.reportTags)
			r.Get("/{id}", s.getReport)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.With(jsonOnly).Post("/", s.createReport)
				r.With(jsonOnly).Put("/{id}", s.updateReport)
				r.Delete("/{id}", s.deleteReport)
				r.Patch("/{id}/status", s.toggleReportStatus)
			})
		})

		r.Route("/intelligence-cards", func(r chi.Router) {
			r.Get("/", s.listCards)
			r.Get("/stats", s.platformStats)
			r.Get("/landing", s.landingCards)
			r.Get("/featured", s.featuredCard)
			r.With(middleware.RequireAdmin).Get("/admin-stats", s.adminStats)
			r.Get("/{id}", s.getCard)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.With(jsonOnly).Post("/", s.createCard)
				r.With(jsonOnly).Put("/{id}", s.updateCard)
				r.Delete("/{id}", s.deleteCard)
				r.Post("/{id}/toggle-status", s.toggleCardStatus)
				r.Post("/{id}/toggle-featured", s.toggleCardFeatured)
			})
		})
	})
	return r
}
