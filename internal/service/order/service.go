// Package order orchestrates checkout and order queries. Submission is an
// at-most-once client attempt: no automatic retries, and local state only
// ever reflects server-confirmed responses.
package order

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/Mokhaled2004/SoupShop/internal/domain"
	"github.com/Mokhaled2004/SoupShop/internal/pricing"
	"github.com/Mokhaled2004/SoupShop/internal/upstream"
)

// Client is the slice of the upstream API the order flow needs.
type Client interface {
	CreateOrder(ctx context.Context, token, idempotencyKey string, in upstream.CreateOrderInput) (*domain.Order, error)
	Orders(ctx context.Context, token string) ([]domain.Order, error)
	OrderByID(ctx context.Context, token string, id int) (*domain.Order, error)
	CancelOrder(ctx context.Context, token string, id int) (*domain.Order, error)
}

// CartEngine is the part of the cart service checkout depends on.
type CartEngine interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// TokenSource supplies the session's auth token.
type TokenSource interface {
	Token(ctx context.Context, sessionID string) (string, error)
}

type Service struct {
	client Client
	carts  CartEngine
	auth   TokenSource
	logger *log.Logger

	// newAttemptKey stamps each checkout attempt for upstream deduplication.
	newAttemptKey func() string

	mu     sync.Mutex
	listed map[string][]domain.Order
}

func New(client Client, carts CartEngine, auth TokenSource, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		client:        client,
		carts:         carts,
		auth:          auth,
		logger:        logger,
		newAttemptKey: uuid.NewString,
		listed:        make(map[string][]domain.Order),
	}
}

// Create submits the session's cart as an order. Preconditions (auth token
// present, cart non-empty) are checked before any network call. The cart is
// cleared only after the upstream confirms the order; on failure it is left
// untouched.
func (s *Service) Create(ctx context.Context, sessionID string, address domain.Address, paymentMethod string) (*domain.Order, error) {
	token, err := s.auth.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, domain.OrderItem{
			SoupID:   line.Soup.ID,
			Name:     line.Soup.Name,
			Price:    line.Soup.Price,
			Quantity: line.Quantity,
		})
	}

	quote := pricing.Compute(cart.TotalPrice)
	created, err := s.client.CreateOrder(ctx, token, s.newAttemptKey(), upstream.CreateOrderInput{
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		TotalAmount:     quote.TotalAmount(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// The order exists upstream; a stale cart is recoverable, losing the
		// confirmation is not.
		s.logger.Printf("order service: order=%d created but cart clear failed session=%s error=%v", created.ID, sessionID, err)
	}
	s.invalidate(sessionID)
	return created, nil
}

// List fetches the session user's orders and remembers the result so a
// follow-up GetByID can avoid a second round trip.
func (s *Service) List(ctx context.Context, sessionID string) ([]domain.Order, error) {
	token, err := s.auth.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	orders, err := s.client.Orders(ctx, token)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.listed[sessionID] = orders
	s.mu.Unlock()
	return orders, nil
}

// GetByID returns one order, consulting the most recent List result before
// making a dedicated remote call.
func (s *Service) GetByID(ctx context.Context, sessionID string, id int) (*domain.Order, error) {
	token, err := s.auth.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cached := s.fromCache(sessionID, id); cached != nil {
		return cached, nil
	}
	return s.client.OrderByID(ctx, token, id)
}

// Cancel requests cancellation of an order still in pending/processing and
// returns the server's updated order. The local view is never flipped ahead
// of server confirmation.
func (s *Service) Cancel(ctx context.Context, sessionID string, id int) (*domain.Order, error) {
	token, err := s.auth.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	current, err := s.GetByID(ctx, sessionID, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.Cancellable() {
		return nil, fmt.Errorf("%w: status %s", domain.ErrNotCancellable, current.Status)
	}
	updated, err := s.client.CancelOrder(ctx, token, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(sessionID)
	return updated, nil
}

func (s *Service) fromCache(sessionID string, id int) *domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.listed[sessionID] {
		if order.ID == id {
			copied := order
			return &copied
		}
	}
	return nil
}

func (s *Service) invalidate(sessionID string) {
	s.mu.Lock()
	delete(s.listed, sessionID)
	s.mu.Unlock()
}
