package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/internal/application"
)

type ProductHandler struct {
	Products *application.ProductService
	Logger   *logrus.Logger
}

func NewProductHandler(products *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Products: products, Logger: logger}
}

func (h *ProductHandler) List(c *gin.Context) {
	ps, err := h.Products.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Products.GetProductByID(c.Request.Context(), c.Param("productId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Search GET /products/search?value=
func (h *ProductHandler) Search(c *gin.Context) {
	ps, err := h.Products.SearchProducts(c.Request.Context(), c.Query("value"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}
