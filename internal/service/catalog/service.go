package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Mokhaled2004/SoupShop/internal/domain"
)

// Queries of two characters or fewer are treated as "no search active".
const minQueryLen = 3

// Source supplies the full catalog. Implemented by the upstream client and
// by the embedded static dataset.
type Source interface {
	Soups(ctx context.Context) ([]domain.Soup, error)
}

// Service caches the catalog after the first successful fetch and answers
// all lookups from that snapshot. Catalog items are never mutated locally.
type Service struct {
	source Source

	mu     sync.Mutex
	soups  []domain.Soup
	loaded bool
}

func New(source Source) *Service {
	return &Service{source: source}
}

// All returns the cached catalog, fetching it on first use. A failed fetch
// leaves the cache unpopulated so the next call retries.
func (s *Service) All(ctx context.Context) ([]domain.Soup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		soups, err := s.source.Soups(ctx)
		if err != nil {
			return nil, err
		}
		s.soups = soups
		s.loaded = true
	}
	out := make([]domain.Soup, len(s.soups))
	copy(out, s.soups)
	return out, nil
}

// ByID returns the catalog item with the given id or domain.ErrNotFound.
// Unknown ids are never defaulted to a placeholder item.
func (s *Service) ByID(ctx context.Context, id int) (*domain.Soup, error) {
	soups, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range soups {
		if soups[i].ID == id {
			return &soups[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// ByCategory filters the catalog by category tag. "all" matches everything;
// the dietary tags (vegetarian, vegan, gluten-free, spicy) match on the
// corresponding boolean flag; anything else exact-matches the category field.
func (s *Service) ByCategory(ctx context.Context, category string) ([]domain.Soup, error) {
	return s.Filter(ctx, category, "")
}

// Search runs a case-insensitive substring match over name, description,
// ingredients and category.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Soup, error) {
	return s.Filter(ctx, "all", query)
}

// Filter applies a category filter and a search query simultaneously
// (logical AND), matching the storefront menu page.
func (s *Service) Filter(ctx context.Context, category, query string) ([]domain.Soup, error) {
	soups, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Soup, 0, len(soups))
	for _, soup := range soups {
		if matchesCategory(soup, category) && matchesQuery(soup, query) {
			result = append(result, soup)
		}
	}
	return result, nil
}

// TopRated returns up to limit items sorted by rating descending. The sort is
// stable so ties keep their catalog order.
func (s *Service) TopRated(ctx context.Context, limit int) ([]domain.Soup, error) {
	soups, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(soups, func(i, j int) bool {
		return soups[i].Rating > soups[j].Rating
	})
	if limit >= 0 && limit < len(soups) {
		soups = soups[:limit]
	}
	return soups, nil
}

func matchesCategory(soup domain.Soup, category string) bool {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "", "all":
		return true
	case "vegetarian":
		return soup.IsVegetarian
	case "vegan":
		return soup.IsVegan
	case "gluten-free":
		return soup.IsGlutenFree
	case "spicy":
		return soup.IsSpicy
	default:
		return strings.EqualFold(soup.Category, category)
	}
}

func matchesQuery(soup domain.Soup, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < minQueryLen {
		return true
	}
	if strings.Contains(strings.ToLower(soup.Name), query) ||
		strings.Contains(strings.ToLower(soup.Description), query) ||
		strings.Contains(strings.ToLower(soup.Category), query) {
		return true
	}
	for _, ingredient := range soup.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), query) {
			return true
		}
	}
	return false
}
