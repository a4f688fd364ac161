package http

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"fieldpulse/internal/services"
)

// DashboardPage serves the server-rendered dashboard page from the
// embedded template filesystem. The page carries the initial unfiltered
// table and the option sets; subsequent filtering happens through the
// JSON API.
func DashboardPage(service *services.ReportService, templates fs.FS, logger *slog.Logger) http.HandlerFunc {
	tmpl, err := template.ParseFS(templates, "templates/dashboard.html")
	if err != nil {
		logger.Error("dashboard template unavailable", slog.String("error", err.Error()))
		return func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Dashboard page not found", http.StatusNotFound)
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		view := service.DashboardView(r.Context())
		if err := tmpl.Execute(w, view); err != nil {
			logger.ErrorContext(r.Context(), "dashboard render failed",
				slog.String("error", err.Error()))
		}
	}
}

// RedirectToDashboard redirects root requests to the dashboard page
func RedirectToDashboard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusTemporaryRedirect)
}
