// Package state holds the three workout slots in memory and keeps them in
// sync with the durable key-value store.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/claude/push/internal/kv"
	"github.com/claude/push/internal/models"
	"github.com/claude/push/internal/rotation"
)

// Storage keys.
const (
	KeyCurrent      = "push_workout"
	KeyPrevious     = "push_previous_workout"
	KeyNext         = "push_next_workout"
	KeyLastActivity = "push_last_activity"
)

var (
	ErrNotLoaded         = errors.New("workouts not loaded yet")
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrSetNotFound       = errors.New("set not found")
	ErrFieldNotPlannable = errors.New("field cannot be planned")
	ErrNothingToConfirm  = errors.New("field has no value to confirm")
	ErrLastSet           = errors.New("an exercise needs at least one set")
	ErrUnknownField      = errors.New("unknown field")
)

// Store is the application state: previous, current and next workouts.
// It is created once per process and shared by reference.
type Store struct {
	kv  kv.Store
	log *slog.Logger

	mu     sync.RWMutex
	loaded bool
	slots  models.Triple
}

var _ rotation.Slots = (*Store)(nil)

// New creates a Store on top of the given key-value store. Call Load
// before anything else.
func New(store kv.Store, log *slog.Logger) *Store {
	return &Store{kv: store, log: log}
}

// Load reads all three slots. Missing or malformed slots fall back to the
// built-in dataset, which is then written back. Load never fails.
func (s *Store) Load(ctx context.Context) {
	fallbacks := make(map[string]string)

	previous := loadSlot(ctx, s, KeyPrevious, DefaultPrevious, fallbacks)
	current := loadSlot(ctx, s, KeyCurrent, DefaultCurrent, fallbacks)
	next := loadSlot(ctx, s, KeyNext, DefaultNext, fallbacks)

	s.mu.Lock()
	s.slots = models.Triple{Previous: previous, Current: current, Next: next}
	s.loaded = true
	s.mu.Unlock()

	if len(fallbacks) > 0 {
		if err := s.kv.SetMulti(ctx, fallbacks); err != nil {
			s.log.Warn("failed to save default workouts", "error", err)
		}
	}
	s.log.Info("workouts loaded", "defaults", len(fallbacks))
}

func loadSlot[S models.SetKind[S]](ctx context.Context, s *Store, key string, fallback func() models.Workout[S], fallbacks map[string]string) models.Workout[S] {
	useDefault := func() models.Workout[S] {
		w := fallback()
		if data, err := json.Marshal(w); err == nil {
			fallbacks[key] = string(data)
		}
		return w
	}

	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn("failed to load workout", "key", key, "error", err)
		return useDefault()
	}
	if !ok {
		return useDefault()
	}
	w, err := models.Decode[S]([]byte(raw))
	if err != nil {
		s.log.Warn("stored workout is malformed, using default", "key", key, "error", err)
		return useDefault()
	}
	return w
}

// Loaded reports whether Load has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Triple returns a copy of all three slots.
func (s *Store) Triple() (models.Triple, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return models.Triple{}, ErrNotLoaded
	}
	return s.slots.Clone(), nil
}

// Current returns a copy of the current workout.
func (s *Store) Current() (models.CurrentWorkout, error) {
	t, err := s.Triple()
	return t.Current, err
}

// Previous returns a copy of the previous workout.
func (s *Store) Previous() (models.PreviousWorkout, error) {
	t, err := s.Triple()
	return t.Previous, err
}

// Next returns a copy of the next workout.
func (s *Store) Next() (models.NextWorkout, error) {
	t, err := s.Triple()
	return t.Next, err
}

// LastActivity implements rotation.Slots. A stamp that is not a number is
// treated as absent.
func (s *Store) LastActivity(ctx context.Context) (time.Time, bool, error) {
	raw, ok, err := s.kv.Get(ctx, KeyLastActivity)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading last activity: %w", err)
	}
	if !ok {
		return time.Time{}, false, nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.log.Warn("ignoring malformed last activity", "value", raw)
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms), true, nil
}

// Touch implements rotation.Slots.
func (s *Store) Touch(ctx context.Context, at time.Time) error {
	if err := s.kv.Set(ctx, KeyLastActivity, stamp(at)); err != nil {
		return fmt.Errorf("writing last activity: %w", err)
	}
	return nil
}

// Apply implements rotation.Slots. The new slots are only visible once the
// batch has been written.
func (s *Store) Apply(ctx context.Context, at time.Time, roll func(models.Triple) models.Triple) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	next := roll(s.slots.Clone())
	entries, err := encodeTriple(next)
	if err != nil {
		return err
	}
	entries[KeyLastActivity] = stamp(at)

	if err := s.kv.SetMulti(ctx, entries); err != nil {
		return fmt.Errorf("writing rotated workouts: %w", err)
	}
	s.slots = next
	return nil
}

// ReplacePrevious swaps in a new previous workout, e.g. from an import.
func (s *Store) ReplacePrevious(ctx context.Context, w models.PreviousWorkout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	s.slots.Previous = w.Clone()
	return persist(ctx, s, KeyPrevious, w)
}

func encodeTriple(t models.Triple) (map[string]string, error) {
	entries := make(map[string]string, 4)
	for key, w := range map[string]any{
		KeyPrevious: t.Previous,
		KeyCurrent:  t.Current,
		KeyNext:     t.Next,
	} {
		data, err := json.Marshal(w)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", key, err)
		}
		entries[key] = string(data)
	}
	return entries, nil
}

// persist writes one slot. Callers hold s.mu.
func persist[S models.SetKind[S]](ctx context.Context, s *Store, key string, w models.Workout[S]) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		s.log.Warn("failed to save workout", "key", key, "error", err)
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

func stamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
