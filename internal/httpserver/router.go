package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Mokhaled2004/SoupShop/internal/repository/session"
	"github.com/Mokhaled2004/SoupShop/internal/service/auth"
	"github.com/Mokhaled2004/SoupShop/internal/service/cart"
	"github.com/Mokhaled2004/SoupShop/internal/service/catalog"
	"github.com/Mokhaled2004/SoupShop/internal/service/order"
)

// Deps collects the services the router needs.
type Deps struct {
	Store       session.Store
	Catalog     *catalog.Service
	Carts       *cart.Service
	Orders      *order.Service
	Auth        *auth.Service
	CORSOrigins []string
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Store))

	api := router.Group("/api")
	api.Use(sessionMiddleware())

	api.GET("/soups", listSoupsHandler(deps.Catalog))
	api.GET("/soups/search", searchSoupsHandler(deps.Catalog))
	api.GET("/soups/top-rated", topRatedSoupsHandler(deps.Catalog))
	api.GET("/soups/category/:category", soupsByCategoryHandler(deps.Catalog))
	api.GET("/soups/:id", soupByIDHandler(deps.Catalog))

	api.GET("/cart", getCartHandler(deps.Carts))
	api.POST("/cart/items", addToCartHandler(deps.Carts, deps.Catalog))
	api.PUT("/cart/items/:soupId", updateCartItemHandler(deps.Carts))
	api.DELETE("/cart/items/:soupId", removeCartItemHandler(deps.Carts))
	api.DELETE("/cart", clearCartHandler(deps.Carts))

	api.GET("/checkout/quote", checkoutQuoteHandler(deps.Carts))

	api.POST("/orders", createOrderHandler(deps.Orders))
	api.GET("/orders", listOrdersHandler(deps.Orders))
	api.GET("/orders/:id", orderByIDHandler(deps.Orders))
	api.PUT("/orders/:id/cancel", cancelOrderHandler(deps.Orders))

	api.POST("/auth/login", loginHandler(deps.Auth))
	api.POST("/auth/register", registerHandler(deps.Auth))
	api.POST("/auth/logout", logoutHandler(deps.Auth))
	api.GET("/auth/me", currentUserHandler(deps.Auth))

	return router
}
