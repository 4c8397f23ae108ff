package order

import (
	"context"
	"errors"
	"testing"

	"github.com/Mokhaled2004/SoupShop/internal/domain"
	"github.com/Mokhaled2004/SoupShop/internal/repository/session"
	cartsvc "github.com/Mokhaled2004/SoupShop/internal/service/cart"
	"github.com/Mokhaled2004/SoupShop/internal/upstream"
)

type stubClient struct {
	createOrder   *domain.Order
	createErr     error
	createCalls   int
	lastToken     string
	lastKey       string
	lastInput     upstream.CreateOrderInput
	orders        []domain.Order
	ordersErr     error
	ordersCalls   int
	byID          *domain.Order
	byIDErr       error
	byIDCalls     int
	cancelled     *domain.Order
	cancelErr     error
	cancelCalls   int
	lastCancelled int
}

func (s *stubClient) CreateOrder(_ context.Context, token, key string, in upstream.CreateOrderInput) (*domain.Order, error) {
	s.createCalls++
	s.lastToken = token
	s.lastKey = key
	s.lastInput = in
	return s.createOrder, s.createErr
}

func (s *stubClient) Orders(_ context.Context, token string) ([]domain.Order, error) {
	s.ordersCalls++
	s.lastToken = token
	return s.orders, s.ordersErr
}

func (s *stubClient) OrderByID(_ context.Context, _ string, _ int) (*domain.Order, error) {
	s.byIDCalls++
	return s.byID, s.byIDErr
}

func (s *stubClient) CancelOrder(_ context.Context, _ string, id int) (*domain.Order, error) {
	s.cancelCalls++
	s.lastCancelled = id
	return s.cancelled, s.cancelErr
}

type stubAuth struct {
	token string
	err   error
}

func (s *stubAuth) Token(_ context.Context, _ string) (string, error) {
	return s.token, s.err
}

var tomato = domain.Soup{ID: 1, Name: "Classic Tomato Basil", Price: 20.00}

func newFixture(client *stubClient, auth *stubAuth) (*Service, *cartsvc.Service) {
	carts := cartsvc.New(session.NewMemory())
	return New(client, carts, auth, nil), carts
}

func TestCreateRejectsUnauthenticatedBeforeNetwork(t *testing.T) {
	client := &stubClient{}
	svc, carts := newFixture(client, &stubAuth{err: domain.ErrUnauthenticated})
	ctx := context.Background()
	carts.Add(ctx, "s1", tomato, 2)

	_, err := svc.Create(ctx, "s1", domain.Address{}, "cash")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if client.createCalls != 0 {
		t.Fatalf("no network call may happen before the auth check")
	}
}

func TestCreateRejectsEmptyCartBeforeNetwork(t *testing.T) {
	client := &stubClient{}
	svc, _ := newFixture(client, &stubAuth{token: "tok"})

	_, err := svc.Create(context.Background(), "s1", domain.Address{}, "cash")
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if client.createCalls != 0 {
		t.Fatalf("no network call may happen for an empty cart")
	}
}

func TestCreateSnapshotsCartAndClearsOnSuccess(t *testing.T) {
	client := &stubClient{createOrder: &domain.Order{ID: 42, Status: domain.OrderPending}}
	svc, carts := newFixture(client, &stubAuth{token: "tok"})
	ctx := context.Background()
	carts.Add(ctx, "s1", tomato, 2)

	created, err := svc.Create(ctx, "s1", domain.Address{Street: "1 Broth Ave", City: "Soupville",
		State: "NY", ZipCode: "10001", Country: "US"}, "credit_card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 42 {
		t.Fatalf("unexpected order: %+v", created)
	}
	if client.lastToken != "tok" {
		t.Fatalf("expected session token to be forwarded, got %q", client.lastToken)
	}
	if client.lastKey == "" {
		t.Fatalf("expected an idempotency key per attempt")
	}

	in := client.lastInput
	if len(in.Items) != 1 || in.Items[0].SoupID != 1 || in.Items[0].Quantity != 2 || in.Items[0].Price != 20.00 {
		t.Fatalf("unexpected snapshot: %+v", in.Items)
	}
	// subtotal 40.00 -> tax 3.20, shipping 5.99, total 49.19
	if in.TotalAmount != 49.19 {
		t.Fatalf("expected total 49.19, got %v", in.TotalAmount)
	}

	cart, _ := carts.Get(ctx, "s1")
	if len(cart.Lines) != 0 {
		t.Fatalf("expected cart cleared after success, got %+v", cart.Lines)
	}
}

func TestCreateFailureLeavesCartUntouched(t *testing.T) {
	client := &stubClient{createErr: errors.New("upstream down")}
	svc, carts := newFixture(client, &stubAuth{token: "tok"})
	ctx := context.Background()
	carts.Add(ctx, "s1", tomato, 2)

	if _, err := svc.Create(ctx, "s1", domain.Address{}, "cash"); err == nil {
		t.Fatalf("expected create error")
	}
	cart, _ := carts.Get(ctx, "s1")
	if cart.TotalItems != 2 {
		t.Fatalf("failed submission must not touch the cart, got %+v", cart)
	}
}

func TestCreateUsesFreshKeyPerAttempt(t *testing.T) {
	client := &stubClient{createErr: errors.New("timeout")}
	svc, carts := newFixture(client, &stubAuth{token: "tok"})
	ctx := context.Background()
	carts.Add(ctx, "s1", tomato, 1)

	svc.Create(ctx, "s1", domain.Address{}, "cash")
	first := client.lastKey
	svc.Create(ctx, "s1", domain.Address{}, "cash")
	if first == "" || client.lastKey == first {
		t.Fatalf("each checkout attempt needs its own idempotency key")
	}
}

func TestGetByIDPrefersListedOrders(t *testing.T) {
	client := &stubClient{orders: []domain.Order{
		{ID: 7, Status: domain.OrderShipped},
		{ID: 8, Status: domain.OrderPending},
	}}
	svc, _ := newFixture(client, &stubAuth{token: "tok"})
	ctx := context.Background()

	if _, err := svc.List(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order, err := svc.GetByID(ctx, "s1", 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 8 {
		t.Fatalf("unexpected order: %+v", order)
	}
	if client.byIDCalls != 0 {
		t.Fatalf("listed order must be served from cache, got %d remote calls", client.byIDCalls)
	}
}

func TestGetByIDFallsBackToRemote(t *testing.T) {
	client := &stubClient{byID: &domain.Order{ID: 9}}
	svc, _ := newFixture(client, &stubAuth{token: "tok"})

	order, err := svc.GetByID(context.Background(), "s1", 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 9 || client.byIDCalls != 1 {
		t.Fatalf("expected one remote lookup, got %+v calls=%d", order, client.byIDCalls)
	}
}

func TestCancelRejectsNonCancellableStatus(t *testing.T) {
	client := &stubClient{byID: &domain.Order{ID: 5, Status: domain.OrderShipped}}
	svc, _ := newFixture(client, &stubAuth{token: "tok"})

	_, err := svc.Cancel(context.Background(), "s1", 5)
	if !errors.Is(err, domain.ErrNotCancellable) {
		t.Fatalf("expected ErrNotCancellable, got %v", err)
	}
	if client.cancelCalls != 0 {
		t.Fatalf("no cancellation request may be sent for shipped orders")
	}
}

func TestCancelReturnsServerConfirmedState(t *testing.T) {
	client := &stubClient{
		byID:      &domain.Order{ID: 5, Status: domain.OrderProcessing},
		cancelled: &domain.Order{ID: 5, Status: domain.OrderCancelled},
	}
	svc, _ := newFixture(client, &stubAuth{token: "tok"})

	order, err := svc.Cancel(context.Background(), "s1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != domain.OrderCancelled || client.lastCancelled != 5 {
		t.Fatalf("unexpected result: %+v", order)
	}
}

func TestCancelFailurePreservesError(t *testing.T) {
	client := &stubClient{
		byID:      &domain.Order{ID: 5, Status: domain.OrderPending},
		cancelErr: errors.New("conflict"),
	}
	svc, _ := newFixture(client, &stubAuth{token: "tok"})

	if _, err := svc.Cancel(context.Background(), "s1", 5); err == nil || err.Error() != "conflict" {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestListRequiresAuth(t *testing.T) {
	svc, _ := newFixture(&stubClient{}, &stubAuth{err: domain.ErrUnauthenticated})
	if _, err := svc.List(context.Background(), "s1"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
