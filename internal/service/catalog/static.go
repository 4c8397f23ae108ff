package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/Mokhaled2004/SoupShop/internal/domain"
)

//go:embed soups.json
var staticFS embed.FS

// StaticSource serves the embedded catalog, for development and tests where
// no upstream API is available.
type StaticSource struct{}

func (StaticSource) Soups(_ context.Context) ([]domain.Soup, error) {
	raw, err := staticFS.ReadFile("soups.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}
	var soups []domain.Soup
	if err := json.Unmarshal(raw, &soups); err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return soups, nil
}
