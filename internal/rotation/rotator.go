package rotation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/push/internal/models"
)

var (
	// ErrCheckInProgress is returned when a check overlaps a running one.
	ErrCheckInProgress = errors.New("rotation check already in progress")
	// ErrAlreadyChecked is returned for a second check on the same mount.
	ErrAlreadyChecked = errors.New("rotation already checked for this mount")
)

// Slots is the application state the rotator operates on.
type Slots interface {
	// LastActivity returns the last recorded activity, if any.
	LastActivity(ctx context.Context) (time.Time, bool, error)
	// Touch records at as the last activity.
	Touch(ctx context.Context, at time.Time) error
	// Apply replaces all three slots with roll(old) and records at as the
	// last activity, in a single all-or-nothing write.
	Apply(ctx context.Context, at time.Time, roll func(models.Triple) models.Triple) error
}

// Phase is the state of the rotator.
type Phase int

const (
	Idle Phase = iota
	Checking
	Rotating
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Checking:
		return "checking"
	case Rotating:
		return "rotating"
	}
	return "unknown"
}

// Outcome describes what a check did.
type Outcome struct {
	CheckedAt time.Time `json:"checked_at"`
	ElapsedMs int64     `json:"elapsed_ms"`
	Rotated   bool      `json:"rotated"`
	Skipped   bool      `json:"skipped"`
	Reason    string    `json:"reason,omitempty"`
}

// Rotator decides when enough time has passed since the last activity to
// start a new session. Each check touches the activity stamp.
type Rotator struct {
	slots     Slots
	threshold time.Duration
	now       func() time.Time
	log       *slog.Logger

	mu      sync.Mutex
	phase   Phase
	checked bool
}

// Option configures a Rotator.
type Option func(*Rotator)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Rotator) { r.now = now }
}

// NewRotator creates a Rotator. The first mount is armed.
func NewRotator(slots Slots, threshold time.Duration, log *slog.Logger, opts ...Option) *Rotator {
	r := &Rotator{
		slots:     slots,
		threshold: threshold,
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Threshold returns the configured rotation delay.
func (r *Rotator) Threshold() time.Duration {
	return r.threshold
}

// Phase returns the current phase.
func (r *Rotator) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Mount re-arms the check, e.g. when the app returns to the foreground.
// It has no effect while a check is running.
func (r *Rotator) Mount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase == Idle {
		r.checked = false
	}
}

// Check runs the rotation check once for the current mount. Store
// failures are logged and reported as a skipped outcome, never as an
// error; nothing is mutated in that case.
func (r *Rotator) Check(ctx context.Context) (Outcome, error) {
	r.mu.Lock()
	switch {
	case r.phase != Idle:
		r.mu.Unlock()
		return Outcome{}, ErrCheckInProgress
	case r.checked:
		r.mu.Unlock()
		return Outcome{}, ErrAlreadyChecked
	}
	r.phase = Checking
	r.checked = true
	r.mu.Unlock()
	defer r.setPhase(Idle)

	now := r.now()
	out := Outcome{CheckedAt: now}

	last, ok, err := r.slots.LastActivity(ctx)
	if err != nil {
		r.log.Warn("session rotation check failed", "step", "read last activity", "error", err)
		return skipped(out, "reading last activity failed"), nil
	}

	if ok {
		elapsed := now.Sub(last)
		out.ElapsedMs = elapsed.Milliseconds()
		if elapsed >= r.threshold {
			r.setPhase(Rotating)
			if err := r.slots.Apply(ctx, now, func(t models.Triple) models.Triple {
				return Rotate(t, now)
			}); err != nil {
				r.log.Warn("session rotation check failed", "step", "rotate", "error", err)
				return skipped(out, "writing rotated workouts failed"), nil
			}
			out.Rotated = true
			r.log.Info("session rotated", "elapsed", elapsed.String(), "threshold", r.threshold.String())
			return out, nil
		}
	}

	if err := r.slots.Touch(ctx, now); err != nil {
		r.log.Warn("session rotation check failed", "step", "touch last activity", "error", err)
		return skipped(out, "writing last activity failed"), nil
	}
	return out, nil
}

func (r *Rotator) setPhase(p Phase) {
	r.mu.Lock()
	r.phase = p
	r.mu.Unlock()
}

func skipped(out Outcome, reason string) Outcome {
	out.Skipped = true
	out.Reason = reason
	return out
}
