// ABOUTME: Translates Telegram callback payloads into engine events, once, at the boundary
// ABOUTME: The engine never sees delimiter-joined strings; it gets the tagged event union

package telegram

import (
	"fmt"
	"strings"

	"github.com/linkstash/linkstash/internal/engine"
)

// Callback data tags. Telegram limits callback data to 64 bytes, so the URL
// is not embedded: it is recovered from the message the keyboard is attached
// to, which always carries it.
const (
	tagAssign      = "assign"
	tagAddCategory = "add"
	tagColor       = "color"
)

// assignData encodes a category choice. The name goes last because category
// names may themselves contain the separator.
func assignData(color, name string) string {
	return strings.Join([]string{tagAssign, color, name}, "|")
}

// addCategoryData encodes the "create a new category" choice.
func addCategoryData() string {
	return tagAddCategory
}

// colorData encodes a color choice.
func colorData(color string) string {
	return tagColor + "|" + color
}

// decodeCallback turns raw callback data into an engine event. messageText
// is the text of the message the pressed keyboard was attached to; for
// URL-carrying actions the URL is extracted from it.
func decodeCallback(data, messageText string) (engine.Event, error) {
	switch {
	case data == tagAddCategory:
		url, err := engine.ExtractURL(messageText)
		if err != nil {
			return nil, fmt.Errorf("add_category callback without a URL in message: %w", err)
		}
		return engine.AddCategoryPressed{URL: url}, nil

	case strings.HasPrefix(data, tagAssign+"|"):
		parts := strings.SplitN(data, "|", 3)
		if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("malformed assign callback %q", data)
		}
		url, err := engine.ExtractURL(messageText)
		if err != nil {
			return nil, fmt.Errorf("assign callback without a URL in message: %w", err)
		}
		return engine.AssignPressed{URL: url, Category: parts[2], Color: parts[1]}, nil

	case strings.HasPrefix(data, tagColor+"|"):
		color := strings.TrimPrefix(data, tagColor+"|")
		if color == "" {
			return nil, fmt.Errorf("malformed color callback %q", data)
		}
		return engine.ColorPressed{Color: color}, nil

	default:
		return nil, fmt.Errorf("unknown callback data %q", data)
	}
}
