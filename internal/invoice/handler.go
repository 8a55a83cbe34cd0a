package invoice

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
	"github.com/pizzaria-erp/go-api-server/internal/shared/handler"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
)

type RegisterResponse struct {
	Invoice  *model.Invoice          `json:"notaFiscal"`
	Payables []*model.AccountPayable `json:"contasPagar"`
}

type InvoiceHandler struct {
	invoices       *InvoiceRepository
	invoiceService *InvoiceService
}

func NewInvoiceHandler(invoices *InvoiceRepository, invoiceService *InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoices:       invoices,
		invoiceService: invoiceService,
	}
}

// RegisterRoutes mounts /notas-fiscais on rg. Invoices are registered and
// cancelled, never edited or deleted.
func RegisterRoutes(rg *gin.RouterGroup, h *InvoiceHandler) {
	invoices := rg.Group("/notas-fiscais")
	invoices.GET("", h.List)
	invoices.GET("/:id", h.Get)
	invoices.POST("", h.Register)
	invoices.POST("/:id/cancelar", h.Cancel)
}

// List answers GET with optional ?fornecedor= or ?chave= filters.
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if key := strings.TrimSpace(c.Query("chave")); key != "" {
		n, found, err := h.invoices.FindByAccessKey(ctx, key)
		if err != nil {
			handler.HandleError(c, err)
			return
		}
		items := []*model.Invoice{}
		if found {
			items = append(items, n)
		}
		c.JSON(http.StatusOK, items)
		return
	}

	supplierID, present, ok := handler.ParseQueryID(c, "fornecedor")
	if !ok {
		return
	}

	var (
		items []*model.Invoice
		err   error
	)
	if present {
		items, err = h.invoices.FindBySupplier(ctx, supplierID)
	} else {
		items, err = h.invoices.FindAll(ctx)
	}
	if err != nil {
		handler.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	n, found, err := h.invoices.FindByID(c.Request.Context(), id)
	if err != nil {
		handler.HandleError(c, err)
		return
	}
	if !found {
		handler.RespondError(c, repository.ErrNotFound, sharedError.NotFound)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *InvoiceHandler) Register(c *gin.Context) {
	var request model.Invoice
	if !handler.BindJSON(c, &request) {
		return
	}

	n, payables, err := h.invoiceService.Register(c.Request.Context(), &request)
	if err != nil {
		handler.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, RegisterResponse{Invoice: n, Payables: payables})
}

func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	n, err := h.invoiceService.Cancel(c.Request.Context(), id)
	if err != nil {
		handler.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}
