// Package mockapi is an in-memory stand-in for the remote soup shop API,
// serving the same endpoints and response envelope. It backs local
// development and integration tests; nothing here persists across restarts.
package mockapi

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mokhaled2004/SoupShop/internal/domain"
	"github.com/Mokhaled2004/SoupShop/internal/service/catalog"
)

type account struct {
	user     domain.User
	password string
}

// Server holds the mock API's in-memory state.
type Server struct {
	catalog *catalog.Service
	logger  *log.Logger

	mu          sync.Mutex
	nextUserID  int
	nextOrderID int
	accounts    map[string]*account      // by email
	tokens      map[string]int           // token -> user id
	orders      map[int]*domain.Order    // by order id
	attempts    map[string]*domain.Order // idempotency key -> order
}

// New builds a mock API over the embedded catalog.
func New(logger *log.Logger) *Server {
	return &Server{
		catalog:     catalog.New(catalog.StaticSource{}),
		logger:      logger,
		nextUserID:  1,
		nextOrderID: 1,
		accounts:    make(map[string]*account),
		tokens:      make(map[string]int),
		orders:      make(map[int]*domain.Order),
		attempts:    make(map[string]*domain.Order),
	}
}

// Handler returns the mock API's router.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(s.logger.Writer()), gin.Recovery())

	router.GET("/soups", s.listSoups)
	router.GET("/soups/search", s.searchSoups)
	router.GET("/soups/top-rated", s.topRatedSoups)
	router.GET("/soups/category/:category", s.soupsByCategory)
	router.GET("/soups/:id", s.soupByID)

	router.POST("/auth/register", s.register)
	router.POST("/auth/login", s.login)
	router.GET("/auth/me", s.me)

	router.POST("/orders", s.createOrder)
	router.GET("/orders", s.listOrders)
	router.GET("/orders/:id", s.orderByID)
	router.PUT("/orders/:id/cancel", s.cancelOrder)

	return router
}

func (s *Server) listSoups(c *gin.Context) {
	soups, err := s.catalog.All(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	ok(c, http.StatusOK, soups)
}

func (s *Server) soupByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "soup id must be numeric")
		return
	}
	soup, err := s.catalog.ByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, "soup with id "+c.Param("id")+" not found")
		return
	}
	ok(c, http.StatusOK, soup)
}

func (s *Server) soupsByCategory(c *gin.Context) {
	soups, err := s.catalog.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	ok(c, http.StatusOK, soups)
}

func (s *Server) searchSoups(c *gin.Context) {
	soups, err := s.catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	ok(c, http.StatusOK, soups)
}

func (s *Server) topRatedSoups(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, "limit must be numeric")
			return
		}
		limit = parsed
	}
	soups, err := s.catalog.TopRated(c.Request.Context(), limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	ok(c, http.StatusOK, soups)
}

type credentials struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *Server) register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "email and password are required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[email]; exists {
		fail(c, http.StatusConflict, "email already registered")
		return
	}
	acct := &account{
		user: domain.User{
			ID:        s.nextUserID,
			Email:     email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      "user",
		},
		password: req.Password,
	}
	s.nextUserID++
	s.accounts[email] = acct

	token := uuid.NewString()
	s.tokens[token] = acct.user.ID
	ok(c, http.StatusCreated, gin.H{"user": acct.user, "token": token})
}

func (s *Server) login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "email and password are required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, exists := s.accounts[email]
	if !exists || acct.password != req.Password {
		fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token := uuid.NewString()
	s.tokens[token] = acct.user.ID
	ok(c, http.StatusOK, gin.H{"user": acct.user, "token": token})
}

func (s *Server) me(c *gin.Context) {
	user, authorized := s.authenticate(c)
	if !authorized {
		return
	}
	ok(c, http.StatusOK, user)
}

type createOrderRequest struct {
	Items           []domain.OrderItem `json:"items" binding:"required"`
	ShippingAddress domain.Address     `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	TotalAmount     float64            `json:"totalAmount"`
}

func (s *Server) createOrder(c *gin.Context) {
	user, authorized := s.authenticate(c)
	if !authorized {
		return
	}
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		fail(c, http.StatusBadRequest, "order items are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Replaying the same checkout attempt returns the original order.
	attemptKey := c.GetHeader("Idempotency-Key")
	if attemptKey != "" {
		if existing, seen := s.attempts[attemptKey]; seen {
			ok(c, http.StatusOK, existing)
			return
		}
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:              s.nextOrderID,
		UserID:          user.ID,
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		Status:          domain.OrderPending,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.nextOrderID++
	s.orders[order.ID] = order
	if attemptKey != "" {
		s.attempts[attemptKey] = order
	}
	ok(c, http.StatusCreated, order)
}

func (s *Server) listOrders(c *gin.Context) {
	user, authorized := s.authenticate(c)
	if !authorized {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	owned := make([]domain.Order, 0)
	for id := 1; id < s.nextOrderID; id++ {
		if order, exists := s.orders[id]; exists && order.UserID == user.ID {
			owned = append(owned, *order)
		}
	}
	ok(c, http.StatusOK, owned)
}

func (s *Server) orderByID(c *gin.Context) {
	user, authorized := s.authenticate(c)
	if !authorized {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "order id must be numeric")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, exists := s.orders[id]
	if !exists || order.UserID != user.ID {
		fail(c, http.StatusNotFound, "order not found")
		return
	}
	ok(c, http.StatusOK, order)
}

func (s *Server) cancelOrder(c *gin.Context) {
	user, authorized := s.authenticate(c)
	if !authorized {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "order id must be numeric")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, exists := s.orders[id]
	if !exists || order.UserID != user.ID {
		fail(c, http.StatusNotFound, "order not found")
		return
	}
	if !order.Status.Cancellable() {
		fail(c, http.StatusConflict, "order can no longer be cancelled")
		return
	}
	order.Status = domain.OrderCancelled
	order.UpdatedAt = time.Now().UTC()
	ok(c, http.StatusOK, order)
}

func (s *Server) authenticate(c *gin.Context) (domain.User, bool) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if header == "" || token == header {
		fail(c, http.StatusUnauthorized, "bearer token required")
		return domain.User{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, valid := s.tokens[token]
	if !valid {
		fail(c, http.StatusUnauthorized, "invalid token")
		return domain.User{}, false
	}
	for _, acct := range s.accounts {
		if acct.user.ID == userID {
			return acct.user, true
		}
	}
	fail(c, http.StatusUnauthorized, "invalid token")
	return domain.User{}, false
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data, "message": "", "success": true})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"data": nil, "message": message, "success": false})
}
