// Package handler provides HTTP handlers for roster endpoints.
package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rizalarf/matchday/internal/export"
	"github.com/rizalarf/matchday/internal/roster/model"
	"github.com/rizalarf/matchday/internal/roster/service"
	"github.com/rizalarf/matchday/pkg/matchkey"
)

// Handler handles HTTP requests for roster endpoints.
type Handler struct {
	service        service.Service
	logger         *zap.SugaredLogger
	maxUploadBytes int64
}

// New creates a new roster handler instance.
func New(svc service.Service, logger *zap.SugaredLogger, maxUploadBytes int64) *Handler {
	return &Handler{service: svc, logger: logger, maxUploadBytes: maxUploadBytes}
}

// CreateMatch handles POST /matches.
func (h *Handler) CreateMatch(c *gin.Context) {
	var req model.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateMatch(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ReplaceMatch handles PUT /matches. The body is the same shape as match
// creation; the pasted list replaces the roster of an existing match.
func (h *Handler) ReplaceMatch(c *gin.Context) {
	var req model.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ReplaceMatch(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMatches handles GET /matches.
func (h *Handler) ListMatches(c *gin.Context) {
	resp, err := h.service.ListMatches(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetRoster handles GET /matches/roster?date=&field=.
// field may be omitted when the date has exactly one match; this serves the
// shared ?view=player&date=<date> deep links.
func (h *Handler) GetRoster(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		errorResponse(c, "INVALID_REQUEST", "date parameter is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetRoster(c.Request.Context(), date, c.Query("field"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteMatch handles DELETE /matches?date=&field=.
func (h *Handler) DeleteMatch(c *gin.Context) {
	date, field := c.Query("date"), c.Query("field")
	if date == "" || field == "" {
		errorResponse(c, "INVALID_REQUEST", "date and field parameters are required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.DeleteMatch(c.Request.Context(), date, field)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateStatus handles POST /payments/status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UploadProof handles POST /payments/proof (multipart form).
// Form fields: date, field_name, player_name, proof (the image file).
func (h *Handler) UploadProof(c *gin.Context) {
	date := c.PostForm("date")
	field := c.PostForm("field_name")
	player := c.PostForm("player_name")
	if date == "" || field == "" || player == "" {
		errorResponse(c, "INVALID_REQUEST", "date, field_name and player_name are required", http.StatusBadRequest)
		return
	}

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "proof file is required", http.StatusBadRequest)
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		errorResponse(c, "FILE_TOO_LARGE",
			fmt.Sprintf("proof image exceeds %d bytes", h.maxUploadBytes),
			http.StatusRequestEntityTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "could not read proof file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "could not read proof file", http.StatusBadRequest)
		return
	}
	if int64(len(image)) > h.maxUploadBytes {
		errorResponse(c, "FILE_TOO_LARGE",
			fmt.Sprintf("proof image exceeds %d bytes", h.maxUploadBytes),
			http.StatusRequestEntityTooLarge)
		return
	}
	if !isSupportedImage(image) {
		errorResponse(c, "UNSUPPORTED_MEDIA", "proof must be a png or jpeg image", http.StatusBadRequest)
		return
	}

	resp, err := h.service.UploadProof(c.Request.Context(), date, field, player, image)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// isSupportedImage sniffs the upload content; the original form accepted
// jpg/png/jpeg pickers, enforced here server-side.
func isSupportedImage(data []byte) bool {
	switch http.DetectContentType(data) {
	case "image/png", "image/jpeg":
		return true
	}
	return false
}

// GetProof handles GET /payments/proof?date=&field=&player=.
func (h *Handler) GetProof(c *gin.Context) {
	date, field, player := c.Query("date"), c.Query("field"), c.Query("player")
	if date == "" || field == "" || player == "" {
		errorResponse(c, "INVALID_REQUEST", "date, field and player parameters are required", http.StatusBadRequest)
		return
	}

	path, err := h.service.ProofPath(c.Request.Context(), date, field, player)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.File(path)
}

// ExportRoster handles GET /matches/export?date=&field=, returning the
// reconciled roster as an xlsx workbook.
func (h *Handler) ExportRoster(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		errorResponse(c, "INVALID_REQUEST", "date parameter is required", http.StatusBadRequest)
		return
	}

	roster, err := h.service.GetRoster(c.Request.Context(), date, c.Query("field"))
	if err != nil {
		serviceError(c, err)
		return
	}

	workbook, err := export.RosterWorkbook(roster)
	if err != nil {
		h.logger.Errorw("ExportRoster workbook build failed", "date", date, "error", err)
		errorResponse(c, "EXPORT_FAILED", "could not build workbook", http.StatusInternalServerError)
		return
	}
	defer workbook.Close()

	folder, err := matchkey.FolderName(roster.Date, roster.FieldName)
	if err != nil {
		folder = "roster"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", folder+".xlsx"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		h.logger.Errorw("ExportRoster write failed", "date", date, "error", err)
	}
}

// ArchiveProofs handles GET /matches/proofs?date=&field=, returning the
// match's proof images as a zip archive.
func (h *Handler) ArchiveProofs(c *gin.Context) {
	date, field := c.Query("date"), c.Query("field")
	if date == "" || field == "" {
		errorResponse(c, "INVALID_REQUEST", "date and field parameters are required", http.StatusBadRequest)
		return
	}

	folder, err := matchkey.FolderName(date, field)
	if err != nil {
		serviceError(c, err)
		return
	}

	// Build the archive in memory first so a failed run still gets a clean
	// JSON error response instead of half-set download headers.
	var buf bytes.Buffer
	if _, err := h.service.ArchiveProofs(c.Request.Context(), date, field, &buf); err != nil {
		h.logger.Errorw("ArchiveProofs failed", "date", date, "field", field, "error", err)
		serviceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", folder+"_proofs.zip"))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}
