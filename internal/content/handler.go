package content

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/content-suite/content-suite/internal/authz"
	"github.com/content-suite/content-suite/internal/platform/httpx"
	"github.com/content-suite/content-suite/internal/shared"
)

// Handler exposes content item endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	authz     authz.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, mw authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, authz: mw, validator: validator.New()}
}

// MountRoutes registers content routes behind per-operation role checks.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.OpContentCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.OpContentRead))
		r.Get("/", h.list)
		r.Get("/{contentID}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.OpContentApprove))
		r.Patch("/{contentID}/approve", h.approve)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.OpContentReject))
		r.Patch("/{contentID}/reject", h.reject)
	})
}

type itemResponse struct {
	ID              string    `json:"id"`
	ManualID        string    `json:"brand_manual_id"`
	Type            string    `json:"type"`
	Title           string    `json:"title"`
	Text            string    `json:"text,omitempty"`
	State           string    `json:"state"`
	ApprovedBy      string    `json:"approved_by,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toItemResponse(it Item) itemResponse {
	resp := itemResponse{
		ID:              it.ID.String(),
		ManualID:        it.ManualID.String(),
		Type:            string(it.Type),
		Title:           it.Title,
		Text:            it.Text,
		State:           string(it.State),
		RejectionReason: it.RejectionReason,
		CreatedBy:       it.CreatedBy.String(),
		CreatedAt:       it.CreatedAt,
		UpdatedAt:       it.UpdatedAt,
	}
	if it.ApprovedBy != uuid.Nil {
		resp.ApprovedBy = it.ApprovedBy.String()
	}
	return resp
}

type createContentRequest struct {
	ManualID string `json:"brand_manual_id" validate:"required,uuid"`
	Type     string `json:"type" validate:"required"`
	Title    string `json:"title" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ident, _ := authz.IdentityFromContext(r.Context())

	var req createContentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	manualID, err := uuid.Parse(req.ManualID)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "brand_manual_id must be a UUID")
		return
	}

	item, err := h.service.Create(r.Context(), CreateInput{
		ManualID: manualID,
		Type:     Type(req.Type),
		Title:    req.Title,
	}, ident.ID)
	if err != nil {
		h.logger.Error("create content", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.service.List(r.Context(), State(r.URL.Query().Get("state")), limit)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "contentID"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	ident, _ := authz.IdentityFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "contentID"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	item, err := h.service.Approve(r.Context(), id, ident.ID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	ident, _ := authz.IdentityFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "contentID"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	var req rejectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	item, err := h.service.Reject(r.Context(), id, req.Reason, ident.ID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
