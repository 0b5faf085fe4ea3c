package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docfill/internal/domain"
	"docfill/internal/ocr"
	"docfill/internal/service"
)

var errNoUpload = errors.New("no file in form field")

// ExtractionHandler handles extraction, fill and run-log endpoints.
type ExtractionHandler struct {
	extraction service.ExtractionService
	fill       service.FillService
	maxUpload  int64
}

// NewExtractionHandler creates a new ExtractionHandler. maxUpload is the
// per-file limit in bytes; zero disables the check.
func NewExtractionHandler(extraction service.ExtractionService, fill service.FillService, maxUpload int64) *ExtractionHandler {
	return &ExtractionHandler{extraction: extraction, fill: fill, maxUpload: maxUpload}
}

// ExtractPassport handles POST /api/v1/extract/passport
// @Summary Extract passport data
// @Accept multipart/form-data
// @Param file formData file true "Passport image or PDF"
// @Router /extract/passport [post]
func (h *ExtractionHandler) ExtractPassport(c *gin.Context) {
	h.extract(c, domain.DocumentTypePassport)
}

// ExtractRepresentative handles POST /api/v1/extract/representative
// @Summary Extract G-28 representative data
// @Accept multipart/form-data
// @Param file formData file true "Form image or PDF"
// @Router /extract/representative [post]
func (h *ExtractionHandler) ExtractRepresentative(c *gin.Context) {
	h.extract(c, domain.DocumentTypeRepresentative)
}

func (h *ExtractionHandler) extract(c *gin.Context, docType domain.DocumentType) {
	doc, err := h.readUpload(c, "file")
	if errors.Is(err, errNoUpload) {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.extraction.Extract(c.Request.Context(), docType, *doc)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Fill handles POST /api/v1/fill
// @Summary Extract both documents and fill the destination form
// @Accept multipart/form-data
// @Param passport formData file false "Passport image or PDF"
// @Param representative formData file false "G-28 image or PDF"
// @Param form_url formData string false "Destination form URL"
// @Router /fill [post]
func (h *ExtractionHandler) Fill(c *gin.Context) {
	input := service.FillInput{FormURL: c.PostForm("form_url")}

	for field, dst := range map[string]**ocr.Document{
		"passport":       &input.Passport,
		"representative": &input.Representative,
	} {
		doc, err := h.readUpload(c, field)
		if errors.Is(err, errNoUpload) {
			continue
		}
		if err != nil {
			HandleError(c, err)
			return
		}
		*dst = doc
	}

	result, err := h.fill.Fill(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// GetRun handles GET /api/v1/runs/:id
// @Summary Get an extraction run
// @Param id path string true "Run ID"
// @Router /runs/{id} [get]
func (h *ExtractionHandler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid run ID")
		return
	}

	run, err := h.extraction.GetRun(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, run)
}

// ListRuns handles GET /api/v1/runs
// @Summary List recent extraction runs
// @Param document_type query string false "passport or representative_form"
// @Param limit query int false "Limit (max 100)" default(20)
// @Router /runs [get]
func (h *ExtractionHandler) ListRuns(c *gin.Context) {
	var docType domain.DocumentType
	if raw := c.Query("document_type"); raw != "" {
		dt, err := domain.ParseDocumentType(raw)
		if err != nil {
			HandleError(c, err)
			return
		}
		docType = dt
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	runs, err := h.extraction.ListRuns(c.Request.Context(), docType, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, runs, PagMeta{Total: len(runs), Limit: limit})
}

func (h *ExtractionHandler) readUpload(c *gin.Context, field string) (*ocr.Document, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, errNoUpload
	}
	defer func() { _ = file.Close() }()

	if h.maxUpload > 0 && header.Size > h.maxUpload {
		return nil, domain.ErrFileTooLarge
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading upload %s: %w", header.Filename, err)
	}
	return &ocr.Document{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
