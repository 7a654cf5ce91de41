// ABOUTME: Registry merges per-user custom categories with the configured defaults
// ABOUTME: A custom category shadows a default of the same name, never duplicates it

package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/linkstash/linkstash/internal/store"
)

// ErrInvalidCategory is returned when a category name is empty after
// trimming, or the color is not part of the palette.
var ErrInvalidCategory = errors.New("invalid category")

// Colors is the fixed palette available for categories.
var Colors = []string{"red", "blue", "green", "yellow", "purple", "pink", "indigo", "gray"}

// ValidColor reports whether color belongs to the palette.
func ValidColor(color string) bool {
	return slices.Contains(Colors, color)
}

// CategoryStore defines what the registry needs from storage
type CategoryStore interface {
	UpsertCategory(ctx context.Context, userID string, cat store.Category) error
	ListCategories(ctx context.Context, userID string) ([]store.Category, error)
}

// Registry owns the set of categories visible to each user: the process-wide
// defaults plus that user's persisted custom categories.
type Registry struct {
	store    CategoryStore
	defaults []store.Category
	logger   *slog.Logger
}

// NewRegistry creates a Registry over the given store and default set.
func NewRegistry(s CategoryStore, defaults []store.Category, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		store:    s,
		defaults: defaults,
		logger:   logger.With("component", "category"),
	}
}

// ListMerged returns the user's categories: custom ones in insertion order
// (oldest first) followed by the defaults, excluding any default whose name
// collides with a custom category. Names are compared case-sensitively.
func (r *Registry) ListMerged(ctx context.Context, userID string) ([]store.Category, error) {
	custom, err := r.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing custom categories: %w", err)
	}

	shadowed := make(map[string]bool, len(custom))
	for _, cat := range custom {
		shadowed[cat.Name] = true
	}

	merged := make([]store.Category, 0, len(custom)+len(r.defaults))
	merged = append(merged, custom...)
	for _, def := range r.defaults {
		if !shadowed[def.Name] {
			merged = append(merged, def)
		}
	}

	return merged, nil
}

// AddCustom validates and inserts (or replaces, by name) a custom category
// for the user. The name is trimmed; an empty trimmed name or a color
// outside the palette fails with ErrInvalidCategory.
func (r *Registry) AddCustom(ctx context.Context, userID, name, color string) (store.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.Category{}, fmt.Errorf("%w: empty name", ErrInvalidCategory)
	}
	if !ValidColor(color) {
		return store.Category{}, fmt.Errorf("%w: unknown color %q", ErrInvalidCategory, color)
	}

	cat := store.Category{Name: name, Color: color}
	if err := r.store.UpsertCategory(ctx, userID, cat); err != nil {
		return store.Category{}, fmt.Errorf("storing custom category: %w", err)
	}

	r.logger.Info("custom category added", "user_id", userID, "name", name, "color", color)
	return cat, nil
}
