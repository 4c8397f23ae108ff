package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Mokhaled2004/SoupShop/internal/domain"
	"github.com/Mokhaled2004/SoupShop/internal/pricing"
	"github.com/Mokhaled2004/SoupShop/internal/service/cart"
	"github.com/Mokhaled2004/SoupShop/internal/service/catalog"
)

type addItemRequest struct {
	SoupID   int  `json:"soupId" binding:"required"`
	Quantity *int `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func getCartHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := carts.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, current)
	}
}

// addToCartHandler resolves the soup through the catalog so the persisted
// line carries the full item snapshot, then merges it into the cart.
func addToCartHandler(carts *cart.Service, soups *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "soupId is required")
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		soup, err := soups.ByID(c.Request.Context(), req.SoupID)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		current, err := carts.Add(c.Request.Context(), sessionID(c), *soup, quantity)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, current)
	}
}

func updateCartItemHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		soupID, err := strconv.Atoi(c.Param("soupId"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "soup id must be numeric")
			return
		}
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "quantity is required")
			return
		}
		current, err := carts.UpdateQuantity(c.Request.Context(), sessionID(c), soupID, req.Quantity)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, current)
	}
}

func removeCartItemHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		soupID, err := strconv.Atoi(c.Param("soupId"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "soup id must be numeric")
			return
		}
		current, err := carts.Remove(c.Request.Context(), sessionID(c), soupID)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, current)
	}
}

func clearCartHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(c.Request.Context(), sessionID(c)); err != nil {
			respondDomainError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, nil, "cart cleared")
	}
}

type quoteResponse struct {
	Cart    domain.Cart       `json:"cart"`
	Pricing pricing.Breakdown `json:"pricing"`
}

// checkoutQuoteHandler prices the current cart with the same rules used at
// order submission, so the displayed breakdown always matches totalAmount.
func checkoutQuoteHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := carts.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			respondDomainError(c, err)
			return
		}
		quote := pricing.Compute(current.TotalPrice)
		respond(c, http.StatusOK, quoteResponse{Cart: current, Pricing: quote.Breakdown()})
	}
}
