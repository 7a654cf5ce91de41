// ABOUTME: Conversation Controller: per-user state machine turning front-end events into directives
// ABOUTME: Serializes all handling per user, including in-flight fetches, so sessions never interleave

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/linkstash/linkstash/internal/category"
	"github.com/linkstash/linkstash/internal/deeplink"
	"github.com/linkstash/linkstash/internal/fetch"
	"github.com/linkstash/linkstash/internal/session"
	"github.com/linkstash/linkstash/internal/store"
)

// LinkCache defines what the engine needs from link persistence
type LinkCache interface {
	GetLink(ctx context.Context, userID, url string) (*store.CachedLink, error)
	UpsertLinkContent(ctx context.Context, userID, url string, content *store.PageContent, resources map[string]store.Resource) (*store.CachedLink, error)
	UpsertLinkCategory(ctx context.Context, userID, url, category, color string) (*store.CachedLink, error)
	ListLinks(ctx context.Context, userID string) ([]*store.CachedLink, error)
}

// Categories defines what the engine needs from the category registry
type Categories interface {
	ListMerged(ctx context.Context, userID string) ([]store.Category, error)
	AddCustom(ctx context.Context, userID, name, color string) (store.Category, error)
}

// Fetcher defines what the engine needs from the content fetcher
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Result, error)
}

// Engine is the conversation controller. One instance serves all users;
// events for the same user are serialized, different users run in parallel.
type Engine struct {
	links      LinkCache
	categories Categories
	sessions   *session.Store
	fetcher    Fetcher
	logger     *slog.Logger

	mu        sync.Mutex
	userLocks map[string]*userLock
}

// userLock serializes events for one user. Entries are reference-counted so
// the lock map does not grow with every user id ever seen: the last holder
// removes the entry, and queued waiters keep it alive until they drain.
type userLock struct {
	mu   sync.Mutex
	refs int
}

// New creates an Engine over the given collaborators.
func New(links LinkCache, categories Categories, sessions *session.Store, fetcher Fetcher, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		links:      links,
		categories: categories,
		sessions:   sessions,
		fetcher:    fetcher,
		logger:     logger.With("component", "engine"),
		userLocks:  make(map[string]*userLock),
	}
}

// lockUser acquires the serialization lock for a user, creating it on first
// use. The reference count is taken before blocking, so a concurrent
// unlockUser cannot delete an entry another event is queued on.
func (e *Engine) lockUser(userID string) *userLock {
	e.mu.Lock()
	lock, ok := e.userLocks[userID]
	if !ok {
		lock = &userLock{}
		e.userLocks[userID] = lock
	}
	lock.refs++
	e.mu.Unlock()

	lock.mu.Lock()
	return lock
}

// unlockUser releases the user's lock and drops the map entry once no event
// holds or waits on it.
func (e *Engine) unlockUser(userID string, lock *userLock) {
	lock.mu.Unlock()

	e.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(e.userLocks, userID)
	}
	e.mu.Unlock()
}

// HandleEvent runs one front-end event through the state machine and returns
// the directive to render. The user's lock is held for the whole call, so a
// second event for the same user queues behind an outstanding fetch instead
// of interleaving with it.
//
// Validation problems (no URL, empty category name, stale button) come back
// as ErrorNotice directives; a non-nil error means persistence failed and
// the requested mutation was not applied.
func (e *Engine) HandleEvent(ctx context.Context, userID string, ev Event) (Directive, error) {
	lock := e.lockUser(userID)
	defer e.unlockUser(userID, lock)

	sess := e.sessions.Get(userID)
	traceID := uuid.New().String()
	e.logger.Debug("event received",
		"trace_id", traceID,
		"user_id", userID,
		"event", fmt.Sprintf("%T", ev),
		"state", sess.State)

	switch ev := ev.(type) {
	case URLSubmitted:
		return e.handleURL(ctx, sess, ev.Text)

	case TextSubmitted:
		// Text is a category name if and only if one is being awaited.
		// Anything else is reinterpreted as a URL submission, which
		// abandons any in-flight flow.
		if sess.State == session.AwaitingNewCategoryName {
			return e.handleCategoryName(sess, ev.Text)
		}
		return e.handleURL(ctx, sess, ev.Text)

	case AddCategoryPressed:
		if sess.State != session.AwaitingCategoryChoice {
			return e.staleButton(sess), nil
		}
		sess.State = session.AwaitingNewCategoryName
		sess.PendingURL = ev.URL
		e.sessions.Put(sess)
		return PromptCategoryName{}, nil

	case AssignPressed:
		if sess.State != session.AwaitingCategoryChoice {
			return e.staleButton(sess), nil
		}
		if !category.ValidColor(ev.Color) {
			// Callback data is attacker-controlled; never persist a
			// color outside the palette.
			return ErrorNotice{Kind: KindInvalidCategory, Message: "That color is not available, pick one from the keyboard."}, nil
		}
		link, err := e.links.UpsertLinkCategory(ctx, sess.UserID, ev.URL, ev.Category, ev.Color)
		if err != nil {
			return nil, fmt.Errorf("assigning category: %w", err)
		}
		e.sessions.Clear(sess.UserID)
		e.logger.Info("link categorized",
			"trace_id", traceID,
			"user_id", sess.UserID,
			"url", ev.URL,
			"category", ev.Category)
		return e.confirm(link), nil

	case ColorPressed:
		if sess.State != session.AwaitingColorChoice {
			return e.staleButton(sess), nil
		}
		cat, err := e.categories.AddCustom(ctx, sess.UserID, sess.PendingCategoryName, ev.Color)
		if errors.Is(err, category.ErrInvalidCategory) {
			// Forged or mangled payload; the color picker stays up.
			return ErrorNotice{Kind: KindInvalidCategory, Message: "That color is not available, pick one from the keyboard."}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("creating category: %w", err)
		}
		link, err := e.links.UpsertLinkCategory(ctx, sess.UserID, sess.PendingURL, cat.Name, cat.Color)
		if err != nil {
			return nil, fmt.Errorf("assigning new category: %w", err)
		}
		e.sessions.Clear(sess.UserID)
		e.logger.Info("link categorized with new category",
			"trace_id", traceID,
			"user_id", sess.UserID,
			"url", sess.PendingURL,
			"category", cat.Name)
		return e.confirm(link), nil

	default:
		return nil, fmt.Errorf("unknown event type %T", ev)
	}
}

// handleURL implements the UrlSubmitted row of the transition table. It runs
// from any state: a new URL abandons whatever flow was in progress.
func (e *Engine) handleURL(ctx context.Context, sess *session.Session, text string) (Directive, error) {
	submitted, err := ExtractURL(text)
	if err != nil {
		// State is deliberately unchanged: a message without a URL does
		// not abandon an in-flight flow.
		return ErrorNotice{Kind: KindNoURLFound, Message: "Please send a valid link."}, nil
	}

	link, err := e.links.GetLink(ctx, sess.UserID, submitted)
	switch {
	case errors.Is(err, store.ErrNotFound):
		link = nil
	case err != nil:
		return nil, fmt.Errorf("looking up link: %w", err)
	}

	// Fetch only when the cache misses, the link was categorized before any
	// fetch, or the cached content is an error marker worth retrying.
	if link == nil || link.Content == nil || link.Content.Failed() {
		content, resources := e.fetchContent(ctx, submitted)
		link, err = e.links.UpsertLinkContent(ctx, sess.UserID, submitted, content, resources)
		if err != nil {
			return nil, fmt.Errorf("caching link: %w", err)
		}
	}

	cats, err := e.categories.ListMerged(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	e.sessions.Put(&session.Session{
		UserID:     sess.UserID,
		State:      session.AwaitingCategoryChoice,
		PendingURL: submitted,
	})

	return ShowCategoryPicker{URL: submitted, Categories: cats}, nil
}

// fetchContent calls the content fetcher and converts any failure into an
// error marker stored with the link. The categorization flow proceeds either
// way.
func (e *Engine) fetchContent(ctx context.Context, submitted string) (*store.PageContent, map[string]store.Resource) {
	result, err := e.fetcher.Fetch(ctx, fetchableURL(submitted))
	if err != nil {
		content := &store.PageContent{FetchFailure: err.Error()}
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) {
			content.Status = fetchErr.Status
		}
		return content, nil
	}

	content := &store.PageContent{
		Status:      result.Status,
		HTML:        result.Body,
		Title:       result.Title,
		Description: result.Description,
	}
	var resources map[string]store.Resource
	if len(result.Resources) > 0 {
		resources = make(map[string]store.Resource, len(result.Resources))
		for u, r := range result.Resources {
			resources[u] = store.Resource{Content: r.Content, Err: r.Err}
		}
	}
	return content, resources
}

// handleCategoryName implements the AwaitingNewCategoryName row. An empty
// name re-prompts without leaving the state.
func (e *Engine) handleCategoryName(sess *session.Session, text string) (Directive, error) {
	name := strings.TrimSpace(text)
	if name == "" {
		return ErrorNotice{Kind: KindInvalidCategory, Message: "The category name cannot be empty."}, nil
	}

	sess.State = session.AwaitingColorChoice
	sess.PendingCategoryName = name
	e.sessions.Put(sess)

	return ShowColorPicker{CategoryName: name, Colors: category.Colors}, nil
}

// Export renders the user's whole link cache as one bulk deep-link payload,
// in stable ascending-timestamp order.
func (e *Engine) Export(ctx context.Context, userID string) (string, error) {
	links, err := e.links.ListLinks(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("listing links: %w", err)
	}

	records := make([]deeplink.Record, len(links))
	for i, link := range links {
		records[i] = exportRecord(link)
	}
	return deeplink.Encode(records), nil
}

// staleButton handles a button press that does not match the session state,
// e.g. tapping an old keyboard after the flow moved on. The session is no
// longer meaningful, so it is cleared.
func (e *Engine) staleButton(sess *session.Session) Directive {
	e.sessions.Clear(sess.UserID)
	return ErrorNotice{Kind: KindInvalidState, Message: "That choice is no longer active. Send a link to start over."}
}

// confirm builds the Confirmation directive for a categorized link.
func (e *Engine) confirm(link *store.CachedLink) Confirmation {
	rec := exportRecord(link)
	return Confirmation{
		Link:     link,
		DeepLink: deeplink.UploadLink(rec),
		Message:  fmt.Sprintf("Saved %s to %s.", link.URL, link.Category),
	}
}

// exportRecord maps a cached link onto the deep-link record shape, falling
// back to the host name when no title was fetched.
func exportRecord(link *store.CachedLink) deeplink.Record {
	rec := deeplink.Record{
		URL:      link.URL,
		Category: link.Category,
		Color:    link.Color,
	}
	if link.Content != nil {
		rec.Title = link.Content.Title
		rec.Description = link.Content.Description
	}
	if rec.Title == "" {
		if u, err := url.Parse(fetchableURL(link.URL)); err == nil {
			rec.Title = u.Host
		}
	}
	return rec
}
