package audit

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/content-suite/content-suite/internal/authz"
	"github.com/content-suite/content-suite/internal/platform/httpx"
	"github.com/content-suite/content-suite/internal/shared"
)

const maxImageBytes = 10 << 20

var (
	errMalformedBody     = errors.New("malformed request body")
	errContentIDRequired = errors.New("content_id must be a UUID")
	errFileRequired      = errors.New("file part is required")
)

// Handler exposes image audit endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	authz   authz.Middleware
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, mw authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, authz: mw}
}

// MountRoutes registers audit routes behind per-operation role checks.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.OpAuditRun))
		r.Post("/image", h.auditImage)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.OpAuditRead))
		r.Get("/", h.list)
		r.Get("/content/{contentID}", h.listByContent)
		r.Get("/{auditID}", h.get)
		r.Get("/{auditID}/image", h.image)
	})
}

type recordResponse struct {
	ID        string    `json:"id"`
	ContentID string    `json:"content_id"`
	ImageRef  string    `json:"image_reference"`
	Compliant bool      `json:"compliant"`
	Score     float64   `json:"score_conformidad"`
	Analysis  string    `json:"analysis"`
	AuditedBy string    `json:"audited_by"`
	CreatedAt time.Time `json:"created_at"`
}

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:        rec.ID.String(),
		ContentID: rec.ContentID.String(),
		ImageRef:  rec.ImageRef,
		Compliant: rec.Compliant,
		Score:     rec.Score,
		Analysis:  rec.Analysis,
		AuditedBy: rec.AuditedBy.String(),
		CreatedAt: rec.CreatedAt,
	}
}

// auditImage accepts either a multipart upload (fields content_id and file)
// or a JSON body carrying content_id and image_url.
func (h *Handler) auditImage(w http.ResponseWriter, r *http.Request) {
	ident, _ := authz.IdentityFromContext(r.Context())

	input, err := h.decodeAuditRequest(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}

	rec, err := h.service.AuditImage(r.Context(), input, ident.ID)
	if err != nil {
		h.logger.Error("audit image", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toRecordResponse(rec))
}

type auditURLRequest struct {
	ContentID string `json:"content_id"`
	ImageURL  string `json:"image_url"`
}

func (h *Handler) decodeAuditRequest(r *http.Request) (AuditInput, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "application/json") {
		var req auditURLRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			return AuditInput{}, errMalformedBody
		}
		contentID, err := uuid.Parse(req.ContentID)
		if err != nil {
			return AuditInput{}, errContentIDRequired
		}
		return AuditInput{ContentID: contentID, ImageURL: req.ImageURL}, nil
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return AuditInput{}, errMalformedBody
	}
	contentID, err := uuid.Parse(r.FormValue("content_id"))
	if err != nil {
		return AuditInput{}, errContentIDRequired
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return AuditInput{}, errFileRequired
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return AuditInput{}, errMalformedBody
	}
	return AuditInput{
		ContentID: contentID,
		ImageData: data,
		MIMEType:  header.Header.Get("Content-Type"),
	}, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := h.service.List(r.Context(), limit)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toRecordResponses(records))
}

func (h *Handler) listByContent(w http.ResponseWriter, r *http.Request) {
	contentID, err := uuid.Parse(chi.URLParam(r, "contentID"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	records, err := h.service.ListByContent(r.Context(), contentID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toRecordResponses(records))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "auditID"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toRecordResponse(rec))
}

// image serves the uploaded image bytes, or redirects when the audit
// referenced an external URL.
func (h *Handler) image(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "auditID"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	obj, redirectURL, err := h.service.Image(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if redirectURL != "" {
		http.Redirect(w, r, redirectURL, http.StatusFound)
		return
	}
	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.Data)
}

func toRecordResponses(records []Record) []recordResponse {
	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordResponse(rec))
	}
	return out
}
