package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mokhaled2004/SoupShop/internal/domain"
	"github.com/Mokhaled2004/SoupShop/internal/upstream"
)

// apiResponse mirrors the upstream envelope so the storefront SPA sees one
// wire format regardless of where a payload originated.
type apiResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, apiResponse{Data: data, Success: true})
}

func respondMessage(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, apiResponse{Data: data, Message: message, Success: true})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, apiResponse{Message: message, Success: false})
}

// respondDomainError maps service errors onto HTTP statuses. Upstream
// failures surface as 502 with the upstream's message; nothing is retried.
func respondDomainError(c *gin.Context, err error) {
	var upErr *upstream.Error
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthenticated):
		respondError(c, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrInvalidQuantity):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		respondError(c, http.StatusUnprocessableEntity, "cart is empty")
	case errors.Is(err, domain.ErrNotCancellable):
		respondError(c, http.StatusConflict, err.Error())
	case errors.As(err, &upErr):
		respondError(c, http.StatusBadGateway, upErr.Message)
	default:
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}
