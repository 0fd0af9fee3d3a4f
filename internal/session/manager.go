// internal/session/manager.go
//
// Session lifecycle on top of the game engine and a key-value store.
// Responsibilities:
//   - Launch: restore the saved session, or start (and save) a new one.
//   - New games: random or daily starting word.
//   - Submissions: run the rule pipeline and save progress on acceptance.
//
// Notes:
//   - Each call loads a fresh Engine from the store, so the store is the only
//     shared state. Calls for the same owner are serialized by a striped lock.
//   - Saved data that fails to decode is logged and replaced, never returned
//     as an error.

package session

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsmith/internal/daily"
	"github.com/robalobadob/wordsmith/internal/game"
	"github.com/robalobadob/wordsmith/internal/store"
)

const lockStripes = 64

// Words supplies starting words and validates submissions.
type Words interface {
	game.SpellChecker
	Pool() []string
}

// Manager owns the load/mutate/save cycle for every player's session.
type Manager struct {
	store store.Store
	words Words
	salt  string
	opts  []game.Option
	locks [lockStripes]sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithDailySalt sets the HMAC salt for daily starting words.
func WithDailySalt(salt string) Option {
	return func(m *Manager) { m.salt = salt }
}

// WithEngineOptions passes options to every Engine the manager builds.
func WithEngineOptions(opts ...game.Option) Option {
	return func(m *Manager) { m.opts = append(m.opts, opts...) }
}

// NewManager wires a Manager to its collaborators.
func NewManager(st store.Store, words Words, opts ...Option) *Manager {
	m := &Manager{store: st, words: words}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open returns the owner's saved session, starting a new one if none is
// saved or the saved one is unusable.
func (m *Manager) Open(ctx context.Context, owner string) (game.Session, error) {
	defer m.lock(owner)()
	e, err := m.load(ctx, owner)
	if err != nil {
		return game.Session{}, err
	}
	return e.Session(), nil
}

// NewGame discards the owner's session and starts one on a random word.
func (m *Manager) NewGame(ctx context.Context, owner string) (game.Session, error) {
	defer m.lock(owner)()
	e := m.engine()
	e.StartGame(m.words.Pool())
	if err := m.save(ctx, owner, e); err != nil {
		return game.Session{}, err
	}
	log.Debug().Str("owner", owner).Str("startingWord", e.Session().StartingWord).Msg("new game")
	return e.Session(), nil
}

// NewDaily discards the owner's session and starts one on the word of the
// day for now's UTC date.
func (m *Manager) NewDaily(ctx context.Context, owner string, now time.Time) (game.Session, error) {
	defer m.lock(owner)()
	e := m.engine()
	e.StartWith(daily.Word(now, m.salt, m.words.Pool()))
	if err := m.save(ctx, owner, e); err != nil {
		return game.Session{}, err
	}
	log.Debug().Str("owner", owner).Str("date", daily.DateKey(now)).Msg("new daily game")
	return e.Session(), nil
}

// Submit applies word to the owner's session. The returned session reflects
// the state after the submission. Errors come only from the store.
func (m *Manager) Submit(ctx context.Context, owner, word string) (game.Result, game.Session, error) {
	defer m.lock(owner)()
	e, err := m.load(ctx, owner)
	if err != nil {
		return game.Result{}, game.Session{}, err
	}
	res := e.Submit(word)
	if res.Accepted() {
		if err := m.save(ctx, owner, e); err != nil {
			return game.Result{}, game.Session{}, err
		}
	}
	return res, e.Session(), nil
}

// Claim hands a guest's saved session to an account that has none.
func (m *Manager) Claim(ctx context.Context, from, to string) (bool, error) {
	// Lock in a fixed order so two claims cannot deadlock.
	a, b := m.stripe(from), m.stripe(to)
	if a > b {
		a, b = b, a
	}
	m.locks[a].Lock()
	defer m.locks[a].Unlock()
	if a != b {
		m.locks[b].Lock()
		defer m.locks[b].Unlock()
	}
	return m.store.Claim(ctx, from, to)
}

func (m *Manager) engine() *game.Engine {
	return game.New(m.words, m.opts...)
}

// load restores owner's engine, starting and saving a new game when the
// saved state is missing or malformed.
func (m *Manager) load(ctx context.Context, owner string) (*game.Engine, error) {
	e := m.engine()
	snap, err := m.read(ctx, owner)
	if err != nil {
		return nil, err
	}

	err = e.Restore(snap)
	switch {
	case err == nil:
		return e, nil
	case errors.Is(err, game.ErrNoSnapshot):
		log.Debug().Str("owner", owner).Msg("no saved session; starting new game")
	default:
		log.Warn().Err(err).Str("owner", owner).Msg("discarding saved session")
	}

	e.StartGame(m.words.Pool())
	if err := m.save(ctx, owner, e); err != nil {
		return nil, err
	}
	return e, nil
}

// read collects whichever snapshot keys are stored for owner.
func (m *Manager) read(ctx context.Context, owner string) (game.Snapshot, error) {
	snap := game.Snapshot{}
	for _, k := range game.Keys() {
		v, err := m.store.Get(ctx, owner, k)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", k, err)
		}
		snap[k] = v
	}
	return snap, nil
}

// save writes every snapshot key for owner.
func (m *Manager) save(ctx context.Context, owner string, e *game.Engine) error {
	snap, err := e.Snapshot()
	if err != nil {
		return err
	}
	for _, k := range game.Keys() {
		if err := m.store.Set(ctx, owner, k, snap[k]); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}

func (m *Manager) stripe(owner string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(owner))
	return int(h.Sum32() % lockStripes)
}

// lock acquires owner's stripe and returns its release func.
func (m *Manager) lock(owner string) func() {
	mu := &m.locks[m.stripe(owner)]
	mu.Lock()
	return mu.Unlock
}
