package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "supstats/internal/errors"
	"supstats/internal/middleware"
	"supstats/internal/services"
)

// ReportHandler handles report generation, listing and download with
// RFC 7807 error responses.
type ReportHandler struct {
	service       ReportServiceInterface
	validation    *middleware.ValidationMiddleware
	queryParams   *middleware.QueryParamValidator
	logger        *slog.Logger
	errorHandler  *apierrors.ErrorHandler
	outputDir     string
	maxUploadSize int64
}

// NewReportHandler creates a report handler. outputDir is where web
// generated reports land; maxUploadSize bounds workbook uploads in
// bytes.
func NewReportHandler(service ReportServiceInterface, validation *middleware.ValidationMiddleware, outputDir string, maxUploadSize int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:       service,
		validation:    validation,
		queryParams:   middleware.NewQueryParamValidator(logger, errorHandler),
		logger:        logger.With(slog.String("component", "report_handler")),
		errorHandler:  errorHandler,
		outputDir:     outputDir,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.ListReports)
	r.With(middleware.ContentTypeValidator("multipart/form-data")).
		Post("/", h.GenerateReport)

	r.Route("/{filename}", func(r chi.Router) {
		r.Use(h.FilenameCtx)
		r.Get("/", h.DownloadReport)
	})

	return r
}

// FilenameCtx validates the filename URL parameter before the download
// handler runs.
func (h *ReportHandler) FilenameCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")
		if filename == "" || strings.Contains(filename, "..") {
			render.Render(w, r, apierrors.NewProblemDetails(
				http.StatusBadRequest,
				apierrors.TypeValidation,
				"Invalid Filename",
				"filename must not be empty or contain path traversal",
				r.URL.Path,
			))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GenerateReport handles POST /api/reports. The workbook arrives as a
// multipart upload in the "workbook" field; "sheet" optionally names
// the sheet to read.
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.errorHandler.HandleError(w, r,
			apierrors.NewValidationError("request must be a multipart upload with a workbook file").
				WithContext("parse_error", err.Error()))
		return
	}

	file, header, err := r.FormFile("workbook")
	if err != nil {
		h.errorHandler.HandleError(w, r,
			apierrors.NewValidationError("workbook file is required"))
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "workbook received",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	stored, err := h.service.SaveUpload(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFileType) {
			render.Render(w, r, apierrors.NewProblemDetails(
				http.StatusUnprocessableEntity,
				apierrors.TypeValidation,
				"Invalid File Type",
				"only .xlsx and .xls workbooks are accepted",
				r.URL.Path,
			))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	req := services.GenerateRequest{
		WorkbookPath: stored,
		Sheet:        r.FormValue("sheet"),
		OutputDir:    h.outputDir,
	}
	if err := h.validation.ValidateStruct(&req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Generate(r.Context(), req)
	if err != nil {
		h.renderGenerateError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status":      "success",
		"report":      filepath.Base(result.ReportPath),
		"report_path": result.ReportPath,
		"data":        result.Report,
	})
}

// renderGenerateError turns a pipeline failure into a problem response,
// surfacing the error log written for it when one exists.
func (h *ReportHandler) renderGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetReqID(r.Context())

	var genErr *services.GenerateError
	if errors.As(err, &genErr) && genErr.ErrorLogPath != "" {
		h.logger.ErrorContext(r.Context(), "report generation failed",
			slog.String("request_id", reqID),
			slog.String("error", err.Error()),
			slog.String("error_log", genErr.ErrorLogPath))

		problem := h.errorHandler.ErrorToProblem(err, r)
		problem.WithExtension("trace_id", reqID)
		problem.WithExtension("error_log", filepath.Base(genErr.ErrorLogPath))
		render.Render(w, r, problem)
		return
	}

	h.errorHandler.HandleError(w, r, err)
}

// ListReports handles GET /api/reports. Accepts optional limit and
// order (newest or oldest) query parameters.
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.queryParams.ValidateInt(w, r, "limit", 1, 1000, 0)
	if !ok {
		return
	}
	order, ok := h.queryParams.ValidateEnum(w, r, "order", []string{"newest", "oldest"}, "newest")
	if !ok {
		return
	}

	reports, err := h.service.ListReports(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if order == "oldest" {
		slices.Reverse(reports)
	}
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   reports,
		"count":  len(reports),
	})
}

// DownloadReport handles GET /api/reports/{filename}.
func (h *ReportHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	path, err := h.service.OpenReport(filename)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			render.Render(w, r, apierrors.NewProblemDetails(
				http.StatusNotFound,
				apierrors.TypeNotFound,
				"Report Not Found",
				fmt.Sprintf("no report named %s", filename),
				r.URL.Path,
			))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	http.ServeFile(w, r, path)
}
