package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Mokhaled2004/SoupShop/internal/service/catalog"
)

const defaultTopRatedLimit = 5

// listSoupsHandler serves the catalog; optional category and q parameters
// compose as a logical AND.
func listSoupsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		soups, err := svc.Filter(c.Request.Context(), c.Query("category"), c.Query("q"))
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, soups)
	}
}

func soupByIDHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "soup id must be numeric")
			return
		}
		soup, err := svc.ByID(c.Request.Context(), id)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, soup)
	}
}

func soupsByCategoryHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		soups, err := svc.ByCategory(c.Request.Context(), c.Param("category"))
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, soups)
	}
}

func searchSoupsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		soups, err := svc.Search(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, soups)
	}
}

func topRatedSoupsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultTopRatedLimit
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				respondError(c, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = parsed
		}
		soups, err := svc.TopRated(c.Request.Context(), limit)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, soups)
	}
}
