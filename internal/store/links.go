// ABOUTME: Link cache methods on SQLiteStore keyed by (user_id, url)
// ABOUTME: Content refresh preserves the category assignment; list order is ascending timestamp

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// GetLink retrieves the cached record for a (user, url) pair.
// Returns ErrNotFound if the user never submitted this URL.
func (s *SQLiteStore) GetLink(ctx context.Context, userID, url string) (*CachedLink, error) {
	query := `SELECT user_id, url, content_blob, resources_json, category, color, timestamp
		FROM links WHERE user_id = ? AND url = ?`

	row := s.db.QueryRowContext(ctx, query, userID, url)
	link, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying link: %w", err)
	}
	return link, nil
}

// UpsertLinkContent stores fetched content for a link, creating the record if
// needed. An existing category/color assignment is preserved: refreshing the
// content must not silently uncategorize a link.
func (s *SQLiteStore) UpsertLinkContent(ctx context.Context, userID, url string, content *PageContent, resources map[string]Resource) (*CachedLink, error) {
	contentBlob, resourcesJSON, err := marshalContent(content, resources)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO links (user_id, url, content_blob, resources_json, timestamp)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, url) DO UPDATE SET
			content_blob = excluded.content_blob,
			resources_json = excluded.resources_json,
			timestamp = excluded.timestamp`

	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, query, userID, url, contentBlob, resourcesJSON, now.Format(timeLayout)); err != nil {
		return nil, fmt.Errorf("upserting link content: %w", err)
	}

	s.logger.Debug("link content stored", "user_id", userID, "url", url)
	return s.GetLink(ctx, userID, url)
}

// UpsertLinkCategory stores or updates the category assignment for a link.
// A record is created with empty content if the URL was never fetched.
func (s *SQLiteStore) UpsertLinkCategory(ctx context.Context, userID, url, category, color string) (*CachedLink, error) {
	query := `INSERT INTO links (user_id, url, category, color, timestamp)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, url) DO UPDATE SET
			category = excluded.category,
			color = excluded.color,
			timestamp = excluded.timestamp`

	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, query, userID, url, category, color, now.Format(timeLayout)); err != nil {
		return nil, fmt.Errorf("upserting link category: %w", err)
	}

	s.logger.Debug("link categorized", "user_id", userID, "url", url, "category", category)
	return s.GetLink(ctx, userID, url)
}

// ListLinks returns all cached links for a user ordered by ascending
// timestamp, which gives a stable order for bulk export.
func (s *SQLiteStore) ListLinks(ctx context.Context, userID string) ([]*CachedLink, error) {
	query := `SELECT user_id, url, content_blob, resources_json, category, color, timestamp
		FROM links WHERE user_id = ? ORDER BY timestamp ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}
	defer rows.Close()

	var links []*CachedLink
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating links: %w", err)
	}

	return links, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanLink.
type scanner interface {
	Scan(dest ...any) error
}

func scanLink(row scanner) (*CachedLink, error) {
	var link CachedLink
	var contentBlob []byte
	var resourcesJSON sql.NullString
	var timestampStr string

	err := row.Scan(&link.UserID, &link.URL, &contentBlob, &resourcesJSON, &link.Category, &link.Color, &timestampStr)
	if err != nil {
		return nil, err
	}

	if len(contentBlob) > 0 {
		link.Content = &PageContent{}
		if err := json.Unmarshal(contentBlob, link.Content); err != nil {
			return nil, fmt.Errorf("decoding content: %w", err)
		}
	}
	if resourcesJSON.Valid && resourcesJSON.String != "" {
		if err := json.Unmarshal([]byte(resourcesJSON.String), &link.Resources); err != nil {
			return nil, fmt.Errorf("decoding resources: %w", err)
		}
	}

	link.Timestamp, err = time.Parse(time.RFC3339Nano, timestampStr)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp: %w", err)
	}

	return &link, nil
}

func marshalContent(content *PageContent, resources map[string]Resource) ([]byte, string, error) {
	var contentBlob []byte
	if content != nil {
		b, err := json.Marshal(content)
		if err != nil {
			return nil, "", fmt.Errorf("encoding content: %w", err)
		}
		contentBlob = b
	}

	resourcesJSON := ""
	if len(resources) > 0 {
		b, err := json.Marshal(resources)
		if err != nil {
			return nil, "", fmt.Errorf("encoding resources: %w", err)
		}
		resourcesJSON = string(b)
	}

	return contentBlob, resourcesJSON, nil
}
