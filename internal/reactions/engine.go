// Package reactions implements like/dislike toggling with optimistic local
// updates: the counter change is applied before the network call, the server
// response replaces it wholesale on success, and the exact pre-toggle
// snapshot is restored on failure.
package reactions

import (
	"context"
	"errors"
	"sync"

	"github.com/basaaj/basaaj-go/internal/models"
)

var (
	// ErrLoginRequired is returned when an anonymous user toggles; a login
	// prompt has been surfaced and no request was sent.
	ErrLoginRequired = errors.New("login required to react")
	// ErrToggleInFlight is returned while a previous toggle on the same
	// view is still outstanding. The call is dropped, not queued.
	ErrToggleInFlight = errors.New("reaction toggle already in flight")
)

// Toggler sends the toggle request. The server decides activate vs.
// deactivate from its own stored state; only the requested type travels.
type Toggler interface {
	ToggleReaction(ctx context.Context, dealID string, typ models.ReactionType) (models.ReactionState, error)
}

// Session answers the authentication precondition.
type Session interface {
	LoggedIn() bool
}

// Engine builds per-deal views sharing one session cache.
type Engine struct {
	cache   Cache
	toggler Toggler
	session Session
	prompt  func() // surfaces the login dialog; may be nil
}

func NewEngine(cache Cache, toggler Toggler, session Session, prompt func()) *Engine {
	return &Engine{cache: cache, toggler: toggler, session: session, prompt: prompt}
}

// View is one mounted display of a deal's reaction state. Two views of the
// same deal may race; the last server response to arrive wins the cache.
type View struct {
	eng    *Engine
	dealID string

	mu       sync.Mutex
	inFlight bool
	state    models.ReactionState
}

// NewView seeds a view from the session cache when an entry exists, falling
// back to the reaction tuple the listing supplied.
func (e *Engine) NewView(dealID string, listing models.ReactionState) *View {
	seed := listing
	if cached, ok := e.cache.Get(dealID); ok {
		seed = cached
	}
	seed.DealID = dealID
	return &View{eng: e, dealID: dealID, state: seed}
}

// State returns the currently displayed reaction tuple.
func (v *View) State() models.ReactionState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Toggle applies one like/dislike press. Selecting the active reaction
// clears it; selecting the other reaction swaps both counters in the same
// update. The optimistic state is visible immediately; the server response
// is authoritative and is written to the session cache. On failure the
// pre-toggle snapshot is restored and the cache is left untouched.
func (v *View) Toggle(ctx context.Context, typ models.ReactionType) error {
	if !v.eng.session.LoggedIn() {
		if v.eng.prompt != nil {
			v.eng.prompt()
		}
		return ErrLoginRequired
	}

	v.mu.Lock()
	if v.inFlight {
		// Drop, don't queue.
		v.mu.Unlock()
		return ErrToggleInFlight
	}
	v.inFlight = true
	prev := v.state
	v.state = applyOptimistic(prev, typ)
	v.mu.Unlock()

	res, err := v.eng.toggler.ToggleReaction(ctx, v.dealID, typ)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.inFlight = false
	if err != nil {
		v.state = prev
		return err
	}
	res.DealID = v.dealID
	v.state = res
	v.eng.cache.Set(v.dealID, res)
	return nil
}

// applyOptimistic computes the zero-latency guess for a toggle of typ
// against prev.
func applyOptimistic(prev models.ReactionState, typ models.ReactionType) models.ReactionState {
	next := prev
	if prev.UserReaction == typ {
		next.UserReaction = models.ReactionNone
	} else {
		next.UserReaction = typ
	}
	switch typ {
	case models.ReactionLike:
		if next.UserReaction == models.ReactionLike {
			next.LikeCount++
		} else {
			next.LikeCount--
		}
		if prev.UserReaction == models.ReactionDislike {
			next.DislikeCount--
		}
	case models.ReactionDislike:
		if next.UserReaction == models.ReactionDislike {
			next.DislikeCount++
		} else {
			next.DislikeCount--
		}
		if prev.UserReaction == models.ReactionLike {
			next.LikeCount--
		}
	}
	return next
}
