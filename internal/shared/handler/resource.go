package handler

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
)

// Store is the repository surface a CRUD resource needs.
type Store[P model.Entity] interface {
	FindAll(ctx context.Context) ([]P, error)
	FindByID(ctx context.Context, id int64) (P, bool, error)
	Apply(ctx context.Context, op repository.Op[P]) (P, error)
	DeleteByID(ctx context.Context, id int64) error
}

// FilterFunc lists the entities referencing id.
type FilterFunc[P any] func(ctx context.Context, id int64) ([]P, error)

// Resource configures RegisterResource. Only Store is required.
type Resource[P model.Entity] struct {
	Store Store[P]
	// Search answers GET ?nome=; without it the parameter is ignored.
	Search func(ctx context.Context, term string) ([]P, error)
	// Filters answer GET ?<param>=<id>, e.g. "estado" for cities of a state.
	// Two filters in one request are rejected with 400.
	Filters map[string]FilterFunc[P]
	// Delete replaces Store.DeleteByID, e.g. with a soft delete.
	Delete func(ctx context.Context, id int64) error
	// Check runs after binding and before the write; a non-nil error is
	// answered through HandleError.
	Check func(ctx context.Context, entity P) error
	// Write replaces Store.Apply, e.g. for aggregates with child rows.
	Write func(ctx context.Context, op repository.Op[P]) (P, error)
}

// RegisterResource mounts list, get, create, update and delete routes for
// one entity on rg:
//
//	GET    /        list (optional ?nome= search or one configured filter)
//	GET    /:id     get
//	POST   /        create (Insert)
//	PUT    /:id     update (Update)
//	DELETE /:id     delete
func RegisterResource[T any, P interface {
	*T
	model.Entity
}](rg *gin.RouterGroup, res Resource[P]) {
	h := &resourceHandler[T, P]{res: res}
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

type resourceHandler[T any, P interface {
	*T
	model.Entity
}] struct {
	res Resource[P]
}

func (h *resourceHandler[T, P]) list(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		filter string
		id     int64
	)
	for _, param := range slices.Sorted(maps.Keys(h.res.Filters)) {
		v, present, ok := ParseQueryID(c, param)
		if !ok {
			return
		}
		if !present {
			continue
		}
		if filter != "" {
			RespondError(c, errors.New("filters "+filter+" and "+param+" cannot be combined"), sharedError.InvalidRequest)
			return
		}
		filter, id = param, v
	}
	if filter != "" {
		items, err := h.res.Filters[filter](ctx, id)
		if err != nil {
			HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
		return
	}

	var (
		items []P
		err   error
	)
	if term := strings.TrimSpace(c.Query("nome")); term != "" && h.res.Search != nil {
		items, err = h.res.Search(ctx, term)
	} else {
		items, err = h.res.Store.FindAll(ctx)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *resourceHandler[T, P]) get(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	item, found, err := h.res.Store.FindByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	if !found {
		RespondError(c, repository.ErrNotFound, sharedError.NotFound)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *resourceHandler[T, P]) create(c *gin.Context) {
	entity := P(new(T))
	if !BindJSON(c, entity) {
		return
	}

	saved, ok := h.write(c, repository.Insert(entity))
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *resourceHandler[T, P]) update(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	entity := P(new(T))
	if !BindJSON(c, entity) {
		return
	}

	saved, ok := h.write(c, repository.Update(id, entity))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *resourceHandler[T, P]) write(c *gin.Context, op repository.Op[P]) (P, bool) {
	ctx := c.Request.Context()

	// audit fields are owned by the repository
	*op.Entity().Meta() = model.Record{}
	if op.IsUpdate() {
		op.Entity().SetID(op.ID())
	}
	if h.res.Check != nil {
		if err := h.res.Check(ctx, op.Entity()); err != nil {
			HandleError(c, err)
			return nil, false
		}
	}

	apply := h.res.Store.Apply
	if h.res.Write != nil {
		apply = h.res.Write
	}

	saved, err := apply(ctx, op)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return saved, true
}

func (h *resourceHandler[T, P]) delete(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	del := h.res.Store.DeleteByID
	if h.res.Delete != nil {
		del = h.res.Delete
	}
	if err := del(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
