package sim

import "time"

// Lockout is a timed state (guard up, swing in progress, hit flash) that
// expires on its own. The flag only changes inside Start, Update and Clear,
// so it is stable between ticks.
type Lockout struct {
	active bool
	until  time.Duration
}

// Start activates the lockout until now+d, replacing any earlier expiry.
func (l *Lockout) Start(now, d time.Duration) {
	l.active = true
	l.until = now + d
}

// Active reports whether the lockout is currently held.
func (l Lockout) Active() bool { return l.active }

// Until returns the expiry timestamp of the current or last lockout.
func (l Lockout) Until() time.Duration { return l.until }

// Update releases the lockout once now reaches its expiry and reports
// whether it was released on this call.
func (l *Lockout) Update(now time.Duration) bool {
	if l.active && now >= l.until {
		l.active = false
		return true
	}
	return false
}

// Clear drops the lockout immediately.
func (l *Lockout) Clear() {
	l.active = false
	l.until = 0
}

// Cooldown gates a rate-limited action: it is allowed when it has never been
// used, or when at least Duration has passed since the last use.
type Cooldown struct {
	Duration time.Duration
	last     time.Duration
	used     bool
}

// NewCooldown returns an unused cooldown of the given length.
func NewCooldown(d time.Duration) Cooldown {
	return Cooldown{Duration: d}
}

// Ready reports whether the action may fire at now.
func (c Cooldown) Ready(now time.Duration) bool {
	return !c.used || now-c.last >= c.Duration
}

// Trigger records a use at now if the cooldown is ready. When it is not,
// nothing changes and false is returned.
func (c *Cooldown) Trigger(now time.Duration) bool {
	if !c.Ready(now) {
		return false
	}
	c.last = now
	c.used = true
	return true
}

// Last returns the timestamp of the last accepted use.
func (c Cooldown) Last() (time.Duration, bool) { return c.last, c.used }

// Remaining returns how long until the action is ready again.
func (c Cooldown) Remaining(now time.Duration) time.Duration {
	if c.Ready(now) {
		return 0
	}
	return c.Duration - (now - c.last)
}

// Reset forgets the last use.
func (c *Cooldown) Reset() {
	c.last = 0
	c.used = false
}

// Debounce limits how often sustained contact may register. A contact that
// lands inside the window after an accepted one is swallowed.
type Debounce struct {
	cd Cooldown
}

// NewDebounce builds a debounce with the given window.
func NewDebounce(window time.Duration) Debounce {
	return Debounce{cd: NewCooldown(window)}
}

// Allow reports whether a contact at now counts, and if so opens a new window.
func (d *Debounce) Allow(now time.Duration) bool { return d.cd.Trigger(now) }

// Shielded reports whether a contact at now would be swallowed.
func (d Debounce) Shielded(now time.Duration) bool { return !d.cd.Ready(now) }

// Reset opens the gate for the next contact.
func (d *Debounce) Reset() { d.cd.Reset() }

// Countdown is a fixed-interval counter such as the 99 second match clock.
// It is fed elapsed time only while the owning round is running, so pausing
// freezes it.
type Countdown struct {
	remaining int
	interval  time.Duration
	acc       time.Duration
	fired     bool
}

// NewCountdown counts down from units, one unit per interval.
func NewCountdown(units int, interval time.Duration) Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return Countdown{remaining: units, interval: interval}
}

// Advance feeds dt of running time. It returns how many units elapsed and
// whether the countdown reached zero during this call. Zero is reported once.
func (c *Countdown) Advance(dt time.Duration) (ticks int, expired bool) {
	if c.remaining <= 0 || dt <= 0 {
		return 0, false
	}
	c.acc += dt
	for c.acc >= c.interval && c.remaining > 0 {
		c.acc -= c.interval
		c.remaining--
		ticks++
	}
	if c.remaining == 0 && !c.fired {
		c.fired = true
		expired = true
	}
	return ticks, expired
}

// Remaining returns the units left.
func (c Countdown) Remaining() int { return c.remaining }

// Expired reports whether the countdown has reached zero.
func (c Countdown) Expired() bool { return c.remaining <= 0 }
