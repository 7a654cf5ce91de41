// ABOUTME: Render directives returned by the engine to the messaging front-end
// ABOUTME: Each directive maps to one presentation; the engine never formats transport-specific output

package engine

import "github.com/linkstash/linkstash/internal/store"

// Directive tells the front-end what to present next. The front-end maps
// each variant to its own rendering (inline keyboard, prompt, plain text).
type Directive interface {
	isDirective()
}

// ShowCategoryPicker asks the front-end to offer the merged category list
// for the submitted URL, plus its own "add new category" affordance.
type ShowCategoryPicker struct {
	URL        string
	Categories []store.Category
}

// PromptCategoryName asks the front-end to request a name for the new
// category as plain text.
type PromptCategoryName struct{}

// ShowColorPicker asks the front-end to offer the color palette for the
// pending new category.
type ShowColorPicker struct {
	CategoryName string
	Colors       []string
}

// Confirmation reports a completed category assignment. DeepLink is the
// mini-application upload link for the categorized record.
type Confirmation struct {
	Link     *store.CachedLink
	DeepLink string
	Message  string
}

// ErrorNotice surfaces a recoverable problem to the user.
type ErrorNotice struct {
	Kind    string
	Message string
}

// ErrorNotice kinds.
const (
	KindNoURLFound      = "no_url_found"
	KindInvalidCategory = "invalid_category"
	KindInvalidState    = "invalid_state"
)

func (ShowCategoryPicker) isDirective() {}
func (PromptCategoryName) isDirective() {}
func (ShowColorPicker) isDirective()    {}
func (Confirmation) isDirective()       {}
func (ErrorNotice) isDirective()        {}
