package brand

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

// Handler exposes brand manual endpoints.
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

// MountRoutes registers manual routes. Callers mount this behind the auth
// middleware; per-operation role checks happen here.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.OpManualCreate))
		r.Post("/manual", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.OpManualRead))
		r.Get("/manual", h.list)
		r.Get("/manual/search", h.search)
		r.Get("/manual/{manualID}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.OpManualUpdate))
		r.Patch("/manual/{manualID}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.OpManualDelete))
		r.Delete("/manual/{manualID}", h.delete)
	})
}

type manualResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Product        string    `json:"product"`
	Tone           string    `json:"tone"`
	TargetAudience string    `json:"target_audience"`
	Restrictions   string    `json:"restrictions"`
	Markdown       string    `json:"generated_markdown,omitempty"`
	Version        int       `json:"version"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toManualResponse(m Manual) manualResponse {
	return manualResponse{
		ID:             m.ID.String(),
		Name:           m.Name,
		Product:        m.Product,
		Tone:           m.Tone,
		TargetAudience: m.TargetAudience,
		Restrictions:   m.Restrictions,
		Markdown:       m.Markdown,
		Version:        m.Version,
		CreatedBy:      m.CreatedBy.String(),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toManualResponses(manuals []Manual) []manualResponse {
	out := make([]manualResponse, 0, len(manuals))
	for _, m := range manuals {
		out = append(out, toManualResponse(m))
	}
	return out
}

type createManualRequest struct {
	Name           string `json:"name" validate:"required"`
	Product        string `json:"product" validate:"required"`
	Tone           string `json:"tone" validate:"required"`
	TargetAudience string `json:"target_audience" validate:"required"`
	Restrictions   string `json:"restrictions"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ident, _ := authz.IdentityFromContext(r.Context())

	var req createManualRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	manual, err := h.service.Create(r.Context(), CreateInput{
		Name:           req.Name,
		Product:        req.Product,
		Tone:           req.Tone,
		TargetAudience: req.TargetAudience,
		Restrictions:   req.Restrictions,
	}, ident.ID)
	if err != nil {
		h.logger.Error("create manual", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toManualResponse(manual))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	manuals, err := h.service.List(r.Context(), limit)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toManualResponses(manuals))
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	manuals, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toManualResponses(manuals))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "manualID"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	manual, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toManualResponse(manual))
}

type updateManualRequest struct {
	Name           *string `json:"name"`
	Product        *string `json:"product"`
	Tone           *string `json:"tone"`
	TargetAudience *string `json:"target_audience"`
	Restrictions   *string `json:"restrictions"`
	Markdown       *string `json:"generated_markdown"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "manualID"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	var req updateManualRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	manual, err := h.service.Update(r.Context(), id, ManualPatch{
		Name:           req.Name,
		Product:        req.Product,
		Tone:           req.Tone,
		TargetAudience: req.TargetAudience,
		Restrictions:   req.Restrictions,
		Markdown:       req.Markdown,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toManualResponse(manual))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "manualID"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "manual deleted"})
}
