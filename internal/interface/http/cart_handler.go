package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/internal/application"
)

type CartHandler struct {
	Users  *application.UserService
	Carts  *application.CartService
	Logger *logrus.Logger
}

func NewCartHandler(users *application.UserService, carts *application.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{Users: users, Carts: carts, Logger: logger}
}

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// quantity 0 removes the line item
type updateCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required,min=0"`
}

type removeFromCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// GetCart GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	u, err := currentUser(c, h.Users)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	cart, err := h.Carts.GetCartByUser(c.Request.Context(), u)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddProduct POST /cart
func (h *CartHandler) AddProduct(c *gin.Context) {
	u, err := currentUser(c, h.Users)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	cart, err := h.Carts.AddProductToCart(c.Request.Context(), u, req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

// UpdateProduct PUT /cart
func (h *CartHandler) UpdateProduct(c *gin.Context) {
	u, err := currentUser(c, h.Users)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	ctx := c.Request.Context()
	if *req.Quantity == 0 {
		if err := h.Carts.DeleteProductFromCart(ctx, u, req.ProductID); err != nil {
			writeError(c, h.Logger, err)
			return
		}
		c.Status(http.StatusNoContent)
		return
	}
	cart, err := h.Carts.UpdateProductInCart(ctx, u, req.ProductID, *req.Quantity)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveProduct DELETE /cart with {productId} or DELETE /cart/:productId
func (h *CartHandler) RemoveProduct(c *gin.Context) {
	u, err := currentUser(c, h.Users)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	productID := c.Param("productId")
	if productID == "" {
		var req removeFromCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
		productID = req.ProductID
	}
	if err := h.Carts.DeleteProductFromCart(c.Request.Context(), u, productID); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
