package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "fieldpulse/internal/errors"
	"fieldpulse/internal/middleware"
	"fieldpulse/internal/services"
	"fieldpulse/pkg/contracts/domain"
)

// ReportHandler handles dashboard and filter HTTP requests with
// RFC 7807 compliant error responses.
type ReportHandler struct {
	service      *services.ReportService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *services.ReportService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the report routes with proper Chi patterns
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/dashboard", h.GetDashboard)
	r.Post("/filter-data", h.FilterData)

	return r
}

// GetDashboard handles GET /api/dashboard. The response always carries
// option sets for the filter controls; a degraded load is reported in
// the error field, never as a failed request.
func (h *ReportHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	h.logger.InfoContext(r.Context(), "building dashboard view",
		slog.String("request_id", reqID))

	view := h.service.DashboardView(r.Context())
	render.JSON(w, r, view)
}

// FilterData handles POST /api/filter-data. The request may arrive as
// an HTML form post or as a JSON body; both shapes carry the same
// field names.
func (h *ReportHandler) FilterData(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	req, err := h.decodeFilterRequest(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "unreadable filter request",
			slog.String("request_id", reqID),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.logger.WarnContext(r.Context(), "filter request failed validation",
			slog.String("request_id", reqID),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, h.validationError(err))
		return
	}

	h.logger.InfoContext(r.Context(), "applying filter",
		slog.String("request_id", reqID),
		slog.String("time_filter", req.Mode),
		slog.String("state", req.Region))

	rows, err := h.service.Filter(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "filter failed",
			slog.String("request_id", reqID),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, rows)
}

// decodeFilterRequest reads a filter request from either a JSON body or
// form values, depending on Content-Type.
func (h *ReportHandler) decodeFilterRequest(r *http.Request) (domain.FilterRequest, error) {
	var req domain.FilterRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, err
	}

	req.Mode = r.PostFormValue("time_filter")
	req.Month = r.PostFormValue("month")
	req.Year = r.PostFormValue("year")
	req.Region = r.PostFormValue("state")
	req.StartDate = r.PostFormValue("start_date")
	req.EndDate = r.PostFormValue("end_date")

	return req, nil
}

// validationError converts validator output into an APIError with
// per-field details.
func (h *ReportHandler) validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.ErrValidationFailed
	}

	details := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		details[strings.ToLower(fe.Field())] = fe.Tag()
	}

	return apierrors.NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Filter request validation failed", details)
}
