// ABOUTME: Tagged event union delivered by the messaging front-end
// ABOUTME: Callback payloads are decoded at the transport boundary, never inside the engine

package engine

// Event is one normalized front-end event. The transport adapter decodes
// raw callback payloads into these types once, at the boundary.
type Event interface {
	isEvent()
}

// URLSubmitted carries a text message expected to contain a URL.
type URLSubmitted struct {
	Text string
}

// TextSubmitted carries a plain text message whose meaning depends on the
// session state: it is a new category name if and only if the session is
// awaiting one, otherwise it is reinterpreted as a URL submission.
type TextSubmitted struct {
	Text string
}

// AddCategoryPressed means the user chose to create a new category for URL.
type AddCategoryPressed struct {
	URL string
}

// AssignPressed means the user picked an existing category for URL.
type AssignPressed struct {
	URL      string
	Category string
	Color    string
}

// ColorPressed means the user picked a color for the pending new category.
type ColorPressed struct {
	Color string
}

func (URLSubmitted) isEvent()       {}
func (TextSubmitted) isEvent()      {}
func (AddCategoryPressed) isEvent() {}
func (AssignPressed) isEvent()      {}
func (ColorPressed) isEvent()       {}
