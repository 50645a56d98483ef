// Package state holds the current stack configuration and keeps it in sync
// with URLs, generated commands and a persistent save slot.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/compat"
	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/ai-stack/stackbuilder/internal/storage"
)

// DefaultSlotKey is the save slot used when none is configured.
const DefaultSlotKey = "ai-stack-config"

// Notifier receives the messages of automatic corrections.
type Notifier interface {
	Notify(messages []string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(messages []string)

// Notify calls f.
func (f NotifierFunc) Notify(messages []string) { f(messages) }

// Store is the single holder of the current stack. Every mutation goes
// through SetStack, which re-runs compatibility analysis. A Store is safe
// for concurrent use.
type Store struct {
	mu      sync.RWMutex
	current stack.State
	// seq numbers every stored stack; delivered is the newest one handed
	// to subscribers.
	seq uint64

	slot     storage.Slot
	slotKey  string
	notifier Notifier
	logger   *zap.Logger

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(stack.State)

	deliverMu sync.Mutex
	delivered uint64
}

// Option configures a Store.
type Option func(*Store)

// WithInitial sets the starting stack. It is analyzed like any update.
func WithInitial(s stack.State) Option {
	return func(st *Store) { st.current = s.Clone() }
}

// WithStorage sets the save slot backend.
func WithStorage(slot storage.Slot) Option {
	return func(st *Store) { st.slot = slot }
}

// WithSlotKey overrides DefaultSlotKey.
func WithSlotKey(key string) Option {
	return func(st *Store) {
		if key != "" {
			st.slotKey = key
		}
	}
}

// WithNotifier sets the receiver of correction messages.
func WithNotifier(n Notifier) Option {
	return func(st *Store) { st.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(st *Store) {
		if l != nil {
			st.logger = l
		}
	}
}

// New creates a Store holding the default stack unless WithInitial is given.
func New(opts ...Option) *Store {
	st := &Store{
		current: stack.Default(),
		slotKey: DefaultSlotKey,
		logger:  zap.NewNop(),
		subs:    make(map[int]func(stack.State)),
	}
	for _, opt := range opts {
		opt(st)
	}

	// A caller-supplied initial stack may come from an old URL.
	res := compat.Analyze(st.current)
	st.current = res.Final(st.current)
	return st
}

// Stack returns a copy of the current stack.
func (st *Store) Stack() stack.State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current.Clone()
}

// SlotKey returns the key used by Save and Load.
func (st *Store) SlotKey() string {
	return st.slotKey
}

// SetStack applies u to the current stack. When the result breaks a
// compatibility rule the corrected stack is stored instead and the
// correction messages are returned and sent to the notifier.
func (st *Store) SetStack(u Update) []string {
	if u == nil {
		return nil
	}

	st.mu.Lock()
	next := u.apply(st.current.Clone())
	res := compat.Analyze(next)
	st.current = res.Final(next)
	st.seq++
	seq := st.seq
	snapshot := st.current.Clone()
	st.mu.Unlock()

	messages := res.Messages()
	if len(messages) > 0 {
		st.logger.Debug("stack corrected",
			zap.Int("changes", len(res.Changes)),
			zap.Strings("messages", messages),
		)
		if st.notifier != nil {
			st.notifier.Notify(messages)
		}
	}

	st.publish(seq, snapshot)
	return messages
}

// Select applies the selection semantics of the builder UI. Add-ons toggle
// membership, git and install flip when the active value is chosen again,
// and every other category is replaced.
func (st *Store) Select(cat catalog.Category, optionID string) []string {
	return st.SetStack(UpdateFunc(func(s stack.State) stack.State {
		return Toggle(s, cat, optionID)
	}))
}

// Toggle returns s with optionID selected in cat.
func Toggle(s stack.State, cat catalog.Category, optionID string) stack.State {
	switch {
	case catalog.IsMulti(cat):
		if optionID == catalog.None {
			s.Addons = []string{}
			return s
		}
		if s.HasAddon(optionID) {
			return s.WithoutAddon(optionID)
		}
		return s.WithoutAddon(catalog.None).WithAddon(optionID)
	case catalog.IsBoolean(cat):
		current := stack.Flag(s.Get(cat))
		if string(current) == optionID {
			s.Set(cat, string(current.Opposite()))
			return s
		}
		s.Set(cat, optionID)
		return s
	default:
		s.Set(cat, optionID)
		return s
	}
}

// ApplyPreset replaces every selection with the preset's. The project name
// is kept unless it is still the default.
func (st *Store) ApplyPreset(id string) ([]string, error) {
	p, err := stack.PresetByID(id)
	if err != nil {
		return nil, err
	}
	return st.SetStack(UpdateFunc(func(s stack.State) stack.State {
		next := p.Stack.Clone()
		if s.ProjectName != stack.DefaultProjectName {
			next.ProjectName = s.ProjectName
		}
		return next
	})), nil
}

// Reset restores the default stack.
func (st *Store) Reset() {
	st.SetStack(UpdateFunc(func(stack.State) stack.State {
		return stack.Default()
	}))
}

// Save writes the current stack to the save slot.
func (st *Store) Save(ctx context.Context) error {
	if st.slot == nil {
		return errors.New("no storage configured")
	}
	data, err := json.Marshal(st.Stack())
	if err != nil {
		return fmt.Errorf("failed to encode stack: %w", err)
	}
	if err := st.slot.Set(ctx, st.slotKey, data); err != nil {
		return fmt.Errorf("failed to save stack: %w", err)
	}
	st.logger.Debug("stack saved", zap.String("slot", st.slotKey))
	return nil
}

// Load restores the stack from the save slot. A saved stack is analyzed
// again because the catalog may have changed since it was written; any
// correction messages are returned. A missing slot reports false and
// leaves the current stack untouched.
func (st *Store) Load(ctx context.Context) (bool, []string, error) {
	if st.slot == nil {
		return false, nil, errors.New("no storage configured")
	}
	data, err := st.slot.Get(ctx, st.slotKey)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("failed to load stack: %w", err)
	}

	saved, err := DecodeJSON(data)
	if err != nil {
		return false, nil, fmt.Errorf("saved stack in %q is corrupt: %w", st.slotKey, err)
	}

	messages := st.SetStack(Replace(saved))
	st.logger.Debug("stack loaded", zap.String("slot", st.slotKey), zap.Int("corrections", len(messages)))
	return true, messages, nil
}

// DecodeJSON decodes a stack, filling absent fields from the default.
func DecodeJSON(data []byte) (stack.State, error) {
	s := stack.Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return stack.State{}, err
	}
	return s.Normalize(), nil
}

// Subscribe registers fn to receive the stack after every mutation. The
// returned function removes the subscription. Deliveries are serialized and
// never go backwards: a stack older than one already delivered is dropped,
// so the last value a subscriber sees is the current stack. fn must not
// mutate the Store.
func (st *Store) Subscribe(fn func(stack.State)) func() {
	st.subMu.Lock()
	defer st.subMu.Unlock()

	id := st.nextID
	st.nextID++
	st.subs[id] = fn

	return func() {
		st.subMu.Lock()
		defer st.subMu.Unlock()
		delete(st.subs, id)
	}
}

func (st *Store) publish(seq uint64, s stack.State) {
	st.deliverMu.Lock()
	defer st.deliverMu.Unlock()
	if seq <= st.delivered {
		return
	}
	st.delivered = seq

	st.subMu.Lock()
	fns := make([]func(stack.State), 0, len(st.subs))
	for _, fn := range st.subs {
		fns = append(fns, fn)
	}
	st.subMu.Unlock()

	for _, fn := range fns {
		fn(s.Clone())
	}
}
