package todo

import (
	"errors"
	"strconv"

	"github.com/fluxorio/todo-service/pkg/core"
	"github.com/fluxorio/todo-service/pkg/web"
)

// Handler maps HTTP requests onto the todo service.
type Handler struct {
	service *Service
	logger  core.Logger
}

// NewHandler creates a handler over the given service.
func NewHandler(service *Service, logger core.Logger) *Handler {
	if logger == nil {
		logger = core.NewDefaultLogger()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the todo endpoints.
func (h *Handler) RegisterRoutes(router *web.Router) {
	router.GET("/todos", h.List)
	router.POST("/todos", h.Create)
	router.GET("/todos/:id", h.Get)
	router.PUT("/todos/:id", h.Update)
	router.DELETE("/todos/:id", h.Delete)
}

// parseID parses the :id path parameter. A non-integer id is a 422 with
// field detail, matching the validation-error shape of body failures.
func (h *Handler) parseID(ctx *web.RequestContext) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		_ = ctx.JSON(422, map[string]interface{}{
			"detail": []FieldError{{Field: "id", Message: "must be an integer"}},
		})
		return 0, false
	}
	return id, true
}

// List handles GET /todos.
func (h *Handler) List(ctx *web.RequestContext) error {
	skip := 0
	limit := 20

	if v := ctx.Query("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := ctx.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			// Out-of-range values clamp to the nearest bound.
			switch {
			case n < 1:
				limit = 1
			case n > 100:
				limit = 100
			default:
				limit = n
			}
		}
	}

	todos, err := h.service.List(ctx.Context(), skip, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(200, todos)
}

// Get handles GET /todos/:id.
func (h *Handler) Get(ctx *web.RequestContext) error {
	id, ok := h.parseID(ctx)
	if !ok {
		return nil
	}

	t, err := h.service.Get(ctx.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return ctx.JSON(404, map[string]interface{}{"detail": "Todo not found"})
	}
	if err != nil {
		return err
	}
	return ctx.JSON(200, t)
}

// Create handles POST /todos.
func (h *Handler) Create(ctx *web.RequestContext) error {
	var req CreateTodoRequest
	if err := ctx.BindJSON(&req); err != nil {
		return ctx.JSON(422, map[string]interface{}{
			"detail": []FieldError{{Field: "body", Message: "invalid JSON body"}},
		})
	}

	if fieldErrs := ValidateCreate(&req); fieldErrs != nil {
		return ctx.JSON(422, map[string]interface{}{"detail": fieldErrs})
	}

	t, err := h.service.Create(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(201, t)
}

// Update handles PUT /todos/:id.
func (h *Handler) Update(ctx *web.RequestContext) error {
	id, ok := h.parseID(ctx)
	if !ok {
		return nil
	}

	var req UpdateTodoRequest
	if err := ctx.BindJSON(&req); err != nil {
		return ctx.JSON(422, map[string]interface{}{
			"detail": []FieldError{{Field: "body", Message: "invalid JSON body"}},
		})
	}

	if fieldErrs := ValidateUpdate(&req); fieldErrs != nil {
		return ctx.JSON(422, map[string]interface{}{"detail": fieldErrs})
	}

	// A field-less patch changes nothing; return the current record
	// without bumping updated_at.
	if req.Empty() {
		t, err := h.service.Get(ctx.Context(), id)
		if errors.Is(err, ErrNotFound) {
			return ctx.JSON(404, map[string]interface{}{"detail": "Todo not found"})
		}
		if err != nil {
			return err
		}
		return ctx.JSON(200, t)
	}

	t, err := h.service.Update(ctx.Context(), id, req)
	if errors.Is(err, ErrNotFound) {
		return ctx.JSON(404, map[string]interface{}{"detail": "Todo not found"})
	}
	if err != nil {
		return err
	}
	return ctx.JSON(200, t)
}

// Delete handles DELETE /todos/:id.
func (h *Handler) Delete(ctx *web.RequestContext) error {
	id, ok := h.parseID(ctx)
	if !ok {
		return nil
	}

	err := h.service.Delete(ctx.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return ctx.JSON(404, map[string]interface{}{"detail": "Todo not found"})
	}
	if err != nil {
		return err
	}
	return ctx.NoContent(204)
}
