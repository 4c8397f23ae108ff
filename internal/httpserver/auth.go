package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mokhaled2004/SoupShop/internal/service/auth"
	"github.com/Mokhaled2004/SoupShop/internal/upstream"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func loginHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "email and password are required")
			return
		}
		user, err := svc.Login(c.Request.Context(), sessionID(c), req.Email, req.Password)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, user)
	}
}

func registerHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "email and password are required")
			return
		}
		user, err := svc.Register(c.Request.Context(), sessionID(c), upstream.RegisterInput{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respondMessage(c, http.StatusCreated, user, "account created")
	}
}

func logoutHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Logout(c.Request.Context(), sessionID(c)); err != nil {
			respondDomainError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, nil, "logged out")
	}
}

func currentUserHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.CurrentUser(c.Request.Context(), sessionID(c))
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, user)
	}
}
