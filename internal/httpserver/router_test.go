package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Mokhaled2004/SoupShop/internal/domain"
	"github.com/Mokhaled2004/SoupShop/internal/repository/session"
	authsvc "github.com/Mokhaled2004/SoupShop/internal/service/auth"
	cartsvc "github.com/Mokhaled2004/SoupShop/internal/service/cart"
	catalogsvc "github.com/Mokhaled2004/SoupShop/internal/service/catalog"
	ordersvc "github.com/Mokhaled2004/SoupShop/internal/service/order"
	"github.com/Mokhaled2004/SoupShop/internal/upstream"
)

type staticSource struct {
	soups []domain.Soup
}

func (s staticSource) Soups(_ context.Context) ([]domain.Soup, error) {
	return s.soups, nil
}

type noopClient struct{}

func (noopClient) CreateOrder(_ context.Context, _, _ string, _ upstream.CreateOrderInput) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}
func (noopClient) Orders(_ context.Context, _ string) ([]domain.Order, error) { return nil, nil }
func (noopClient) OrderByID(_ context.Context, _ string, _ int) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}
func (noopClient) CancelOrder(_ context.Context, _ string, _ int) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}

// testRouter wires the full route tree over a memory store and a fixed
// two-item catalog.
func testRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	store := session.NewMemory()
	carts := cartsvc.New(store)
	auth := authsvc.New(store, nil)
	cat := catalogsvc.New(staticSource{soups: []domain.Soup{
		{ID: 1, Name: "Classic Tomato Basil", Price: 6.99, Category: "classic", IsVegetarian: true, Rating: 4.7},
		{ID: 2, Name: "Clam Chowder", Price: 9.49, Category: "seafood", Rating: 4.3},
	}})
	orders := ordersvc.New(noopClient{}, carts, auth, logger)
	return buildRouter(logger, Deps{
		Store:   store,
		Catalog: cat,
		Carts:   carts,
		Orders:  orders,
		Auth:    auth,
	})
}

type client struct {
	t       *testing.T
	router  http.Handler
	cookies []*http.Cookie
}

// do issues a request, carrying session cookies across calls like a browser.
func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env struct {
		Data    json.RawMessage `json:"data"`
		Success bool            `json:"success"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v (%s)", err, env.Data)
		}
	}
}

func TestHealthz(t *testing.T) {
	c := &client{t: t, router: testRouter(t)}
	rec := c.do(http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionCookieIssuedOnFirstContact(t *testing.T) {
	c := &client{t: t, router: testRouter(t)}
	rec := c.do(http.MethodGet, "/api/cart", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookie && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a session cookie to be issued")
	}
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	c := &client{t: t, router: testRouter(t)}

	rec := c.do(http.MethodPost, "/api/cart/items", gin.H{"soupId": 1, "quantity": 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var cart domain.Cart
	decodeData(t, rec, &cart)
	if cart.TotalItems != 2 {
		t.Fatalf("expected 2 items, got %+v", cart)
	}

	rec = c.do(http.MethodPost, "/api/cart/items", gin.H{"soupId": 1})
	decodeData(t, rec, &cart)
	if cart.TotalItems != 3 || len(cart.Lines) != 1 {
		t.Fatalf("default quantity must be 1 and lines must merge, got %+v", cart)
	}

	rec = c.do(http.MethodPut, "/api/cart/items/1", gin.H{"quantity": 5})
	decodeData(t, rec, &cart)
	if cart.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v", cart.Lines)
	}

	rec = c.do(http.MethodPut, "/api/cart/items/1", gin.H{"quantity": 0})
	decodeData(t, rec, &cart)
	if len(cart.Lines) != 0 {
		t.Fatalf("zero quantity must remove the line, got %+v", cart.Lines)
	}

	c.do(http.MethodPost, "/api/cart/items", gin.H{"soupId": 2, "quantity": 1})
	rec = c.do(http.MethodDelete, "/api/cart", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", rec.Code)
	}
	rec = c.do(http.MethodGet, "/api/cart", nil)
	decodeData(t, rec, &cart)
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", cart.Lines)
	}
}

func TestAddUnknownSoupReturns404(t *testing.T) {
	c := &client{t: t, router: testRouter(t)}
	rec := c.do(http.MethodPost, "/api/cart/items", gin.H{"soupId": 99})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddNonPositiveQuantityReturns400(t *testing.T) {
	c := &client{t: t, router: testRouter(t)}
	rec := c.do(http.MethodPost, "/api/cart/items", gin.H{"soupId": 1, "quantity": -1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestCheckoutQuoteUsesSharedPricingRules(t *testing.T) {
	c := &client{t: t, router: testRouter(t)}
	// 2 x 9.49 = 18.98 subtotal
	c.do(http.MethodPost, "/api/cart/items", gin.H{"soupId": 2, "quantity": 2})

	rec := c.do(http.MethodGet, "/api/checkout/quote", nil)
	var quote struct {
		Pricing struct {
			Subtotal float64 `json:"subtotal"`
			Tax      float64 `json:"tax"`
			Shipping float64 `json:"shipping"`
			Total    float64 `json:"total"`
		} `json:"pricing"`
	}
	decodeData(t, rec, &quote)
	if quote.Pricing.Subtotal != 18.98 || quote.Pricing.Shipping != 5.99 {
		t.Fatalf("unexpected quote: %+v", quote.Pricing)
	}
	if quote.Pricing.Tax != 1.52 {
		t.Fatalf("expected tax 1.52, got %v", quote.Pricing.Tax)
	}
}

func TestSoupFiltersOverHTTP(t *testing.T) {
	c := &client{t: t, router: testRouter(t)}

	var soups []domain.Soup
	decodeData(t, c.do(http.MethodGet, "/api/soups", nil), &soups)
	if len(soups) != 2 {
		t.Fatalf("expected full catalog, got %d", len(soups))
	}

	decodeData(t, c.do(http.MethodGet, "/api/soups/category/vegetarian", nil), &soups)
	if len(soups) != 1 || soups[0].ID != 1 {
		t.Fatalf("unexpected vegetarian filter result: %+v", soups)
	}

	decodeData(t, c.do(http.MethodGet, "/api/soups/search?q=chowder", nil), &soups)
	if len(soups) != 1 || soups[0].ID != 2 {
		t.Fatalf("unexpected search result: %+v", soups)
	}

	decodeData(t, c.do(http.MethodGet, "/api/soups/top-rated?limit=1", nil), &soups)
	if len(soups) != 1 || soups[0].ID != 1 {
		t.Fatalf("unexpected top-rated result: %+v", soups)
	}

	rec := c.do(http.MethodGet, "/api/soups/99", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown soup, got %d", rec.Code)
	}
}

func TestOrdersRequireAuthentication(t *testing.T) {
	c := &client{t: t, router: testRouter(t)}
	c.do(http.MethodPost, "/api/cart/items", gin.H{"soupId": 1, "quantity": 1})

	rec := c.do(http.MethodPost, "/api/orders", validCheckoutBody())
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = c.do(http.MethodGet, "/api/orders", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for order list, got %d", rec.Code)
	}
}

func TestCreateOrderValidatesFormBeforeSubmission(t *testing.T) {
	c := &client{t: t, router: testRouter(t)}
	body := validCheckoutBody()
	body["email"] = "not-an-email"

	rec := c.do(http.MethodPost, "/api/orders", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
	var env struct {
		Data struct {
			Fields map[string]string `json:"fields"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode validation response: %v", err)
	}
	if env.Data.Fields["email"] == "" {
		t.Fatalf("expected a field error for email, got %v", env.Data.Fields)
	}
}

func validCheckoutBody() gin.H {
	return gin.H{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"phone":     "5551234567",
		"address": gin.H{
			"street":  "1 Broth Ave",
			"city":    "Soupville",
			"state":   "NY",
			"zipCode": "10001",
			"country": "US",
		},
		"paymentMethod": "cash",
	}
}
