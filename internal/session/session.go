// ABOUTME: Transient per-user conversation state for the categorization flow
// ABOUTME: At most one live session per user; a new session replaces the old one

package session

import "sync"

// State identifies where a user is in the categorization flow.
type State int

const (
	// Idle means no flow is in progress.
	Idle State = iota
	// AwaitingCategoryChoice means a URL was submitted and the user is
	// picking a category for it.
	AwaitingCategoryChoice
	// AwaitingNewCategoryName means the user pressed "add category" and the
	// next text message is the new category's name.
	AwaitingNewCategoryName
	// AwaitingColorChoice means a new category name was accepted and the
	// user is picking its color.
	AwaitingColorChoice
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingCategoryChoice:
		return "awaiting_category_choice"
	case AwaitingNewCategoryName:
		return "awaiting_new_category_name"
	case AwaitingColorChoice:
		return "awaiting_color_choice"
	default:
		return "unknown"
	}
}

// Session tracks one user's progress through the categorization flow.
type Session struct {
	UserID              string
	State               State
	PendingURL          string
	PendingCategoryName string
	PendingColor        string
}

// Store holds the live session per user. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns a copy of the user's live session, or an Idle session if none
// exists. Callers mutate the copy and Put it back.
func (s *Store) Get(userID string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess, ok := s.sessions[userID]; ok {
		copied := *sess
		return &copied
	}
	return &Session{UserID: userID, State: Idle}
}

// Put stores the session as the user's live session, replacing any prior one.
func (s *Store) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sess
	s.sessions[sess.UserID] = &copied
}

// Clear resets the user to Idle by discarding the live session.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}
