// ABOUTME: Store interface and data types for linkstash persistence
// ABOUTME: Defines CachedLink, Category structs and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// timeLayout keeps a fixed-width fraction so text ordering in SQLite matches
// chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Category is a named, colored tag a user can attach to a link.
// Custom categories are scoped per user; defaults live in configuration.
type Category struct {
	Name  string
	Color string
}

// PageContent holds the outcome of fetching a link's primary page.
// FetchFailure is non-empty when the fetch did not produce a usable page;
// such a record is treated as a miss that may be refetched later.
type PageContent struct {
	Status       int    `json:"status,omitempty"`
	HTML         string `json:"html,omitempty"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	FetchFailure string `json:"fetch_failure,omitempty"`
}

// Failed reports whether this content is an error marker rather than a page.
func (c *PageContent) Failed() bool {
	return c != nil && c.FetchFailure != ""
}

// Resource is one fetched subresource of a page (image, script, stylesheet).
// Exactly one of Content or Err is meaningful.
type Resource struct {
	Content string `json:"content,omitempty"`
	Err     string `json:"err,omitempty"`
}

// CachedLink is the persisted record of one URL for one user.
// Primary key is (UserID, URL): re-submitting the same URL replaces the
// record rather than adding a second one.
type CachedLink struct {
	UserID    string
	URL       string
	Content   *PageContent        // nil when the link was categorized before any fetch
	Resources map[string]Resource // keyed by resource URL
	Category  string              // empty until assigned
	Color     string
	Timestamp time.Time
}

// Categorized reports whether a category has been assigned to this link.
func (l *CachedLink) Categorized() bool {
	return l.Category != ""
}

// Store defines the interface for link and category persistence
type Store interface {
	// Links (primary key user_id+url, last write wins)
	GetLink(ctx context.Context, userID, url string) (*CachedLink, error)
	UpsertLinkContent(ctx context.Context, userID, url string, content *PageContent, resources map[string]Resource) (*CachedLink, error)
	UpsertLinkCategory(ctx context.Context, userID, url, category, color string) (*CachedLink, error)
	ListLinks(ctx context.Context, userID string) ([]*CachedLink, error)

	// Custom categories (primary key user_id+name)
	UpsertCategory(ctx context.Context, userID string, cat Category) error
	ListCategories(ctx context.Context, userID string) ([]Category, error)

	// Close releases any resources held by the store
	Close() error
}
