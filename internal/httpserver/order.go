package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Mokhaled2004/SoupShop/internal/service/checkout"
	"github.com/Mokhaled2004/SoupShop/internal/service/order"
)

// createOrderHandler validates the checkout form, then hands the cart to the
// order service. Validation failures never reach the upstream.
func createOrderHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form checkout.Form
		if err := c.ShouldBindJSON(&form); err != nil {
			respondError(c, http.StatusBadRequest, "invalid checkout payload")
			return
		}
		if fieldErrs := checkout.Validate(form); len(fieldErrs) > 0 {
			c.JSON(http.StatusBadRequest, apiResponse{
				Data:    gin.H{"fields": fieldErrs},
				Message: "validation failed",
				Success: false,
			})
			return
		}

		created, err := orders.Create(c.Request.Context(), sessionID(c), form.Address, form.PaymentMethod)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respondMessage(c, http.StatusCreated, created, "order placed")
	}
}

func listOrdersHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.List(c.Request.Context(), sessionID(c))
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, list)
	}
}

func orderByIDHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "order id must be numeric")
			return
		}
		found, err := orders.GetByID(c.Request.Context(), sessionID(c), id)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, found)
	}
}

func cancelOrderHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "order id must be numeric")
			return
		}
		updated, err := orders.Cancel(c.Request.Context(), sessionID(c), id)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, updated, "cancellation confirmed")
	}
}
