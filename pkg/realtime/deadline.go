package realtime

import "time"

// DefaultTimeout bounds how long a room waits on an unresolved action.
const DefaultTimeout = 20 * time.Second

// Deadline tracks a single pending action that must resolve within Timeout.
// It holds no room state of its own; the owner arms it when the action starts,
// disarms it when the action resolves, and asks Expired on each tick.
type Deadline struct {
	Timeout time.Duration
	ArmedAt time.Time
}

// Arm starts the clock at now.
func (d *Deadline) Arm(now time.Time) {
	d.ArmedAt = now
}

// Disarm stops the clock.
func (d *Deadline) Disarm() {
	d.ArmedAt = time.Time{}
}

// Armed reports whether an action is pending.
func (d *Deadline) Armed() bool {
	return !d.ArmedAt.IsZero()
}

// NextWake returns when the pending action times out. It returns false when
// nothing is pending.
func (d *Deadline) NextWake() (time.Time, bool) {
	if !d.Armed() {
		return time.Time{}, false
	}
	return d.ArmedAt.Add(d.timeout()), true
}

// Expired reports whether the pending action has outlived its timeout.
func (d *Deadline) Expired(now time.Time) bool {
	next, ok := d.NextWake()
	return ok && !now.Before(next)
}

func (d *Deadline) timeout() time.Duration {
	if d.Timeout <= 0 {
		return DefaultTimeout
	}
	return d.Timeout
}
