// Package cart owns the per-session list of (soup, quantity) lines. Carts
// are persisted whole in the session store and every mutation follows a
// read-modify-write of the latest persisted state.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Mokhaled2004/SoupShop/internal/domain"
	"github.com/Mokhaled2004/SoupShop/internal/repository/session"
)

const cartKeyPrefix = "cart:"

// Service is the cart engine. Mutations for the same session are serialized
// through a per-session lock so rapid overlapping requests cannot lose
// updates.
type Service struct {
	store session.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(store session.Store) *Service {
	return &Service{store: store, locks: make(map[string]*sync.Mutex)}
}

// Get loads the session's cart. Absent or unparsable state yields an empty
// cart; corrupt data is never an error.
func (s *Service) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	cart := s.load(ctx, sessionID)
	cart.Recompute()
	return cart, nil
}

// Add merges quantity into the existing line for the soup, or appends a new
// line. Non-positive quantities are rejected with domain.ErrInvalidQuantity.
func (s *Service) Add(ctx context.Context, sessionID string, soup domain.Soup, quantity int) (domain.Cart, error) {
	if quantity <= 0 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) {
		if idx := cart.LineFor(soup.ID); idx >= 0 {
			cart.Lines[idx].Quantity += quantity
			return
		}
		cart.Lines = append(cart.Lines, domain.CartLine{Soup: soup, Quantity: quantity})
	})
}

// UpdateQuantity sets (not increments) the quantity of the line for soupID.
// A quantity <= 0 removes the line. Unknown soup ids are a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, soupID, quantity int) (domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) {
		idx := cart.LineFor(soupID)
		if idx < 0 {
			return
		}
		if quantity <= 0 {
			cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
			return
		}
		cart.Lines[idx].Quantity = quantity
	})
}

// Remove drops the line for soupID if present; absent ids are not an error.
func (s *Service) Remove(ctx context.Context, sessionID string, soupID int) (domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) {
		if idx := cart.LineFor(soupID); idx >= 0 {
			cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
		}
	})
}

// Clear deletes all persisted cart state for the session.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()
	if err := s.store.Delete(ctx, cartKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, apply func(*domain.Cart)) (domain.Cart, error) {
	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	cart := s.load(ctx, sessionID)
	apply(&cart)

	payload, err := json.Marshal(cart.Lines)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("encode cart: %w", err)
	}
	// Write failures must surface so the caller knows the mutation may not
	// have persisted.
	if err := s.store.Set(ctx, cartKeyPrefix+sessionID, payload); err != nil {
		return domain.Cart{}, fmt.Errorf("persist cart: %w", err)
	}

	cart.Recompute()
	return cart, nil
}

func (s *Service) load(ctx context.Context, sessionID string) domain.Cart {
	raw, err := s.store.Get(ctx, cartKeyPrefix+sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			// Unreadable state degrades to an empty cart rather than failing
			// the whole storefront.
			return domain.Cart{}
		}
		return domain.Cart{}
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return domain.Cart{}
	}
	kept := lines[:0]
	for _, line := range lines {
		if line.Quantity >= 1 {
			kept = append(kept, line)
		}
	}
	return domain.Cart{Lines: kept}
}

func (s *Service) lockFor(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}
