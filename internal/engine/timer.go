package engine

// Countdown budgets in seconds.
const (
	QuestBudget      = 600
	ShortSpinBudget  = 60
	LongSpinBudget   = 180
	DefaultResetSpin = LongSpinBudget
)

// Countdown is the single game timer. It holds no clock of its own: the owner
// calls Tick once per elapsed second. Reaching zero fires onExpire exactly once.
type Countdown struct {
	remaining  int
	set        bool
	running    bool
	generation int
	onExpire   func()
}

func NewCountdown(onExpire func()) *Countdown {
	return &Countdown{onExpire: onExpire}
}

// Start replaces any running countdown.
func (c *Countdown) Start(seconds int) {
	c.generation++
	if seconds < 0 {
		seconds = 0
	}
	c.remaining = seconds
	c.set = true
	c.running = seconds > 0
}

// Stop cancels ticking without firing expiry; the remaining value stays visible.
func (c *Countdown) Stop() { c.running = false }

// Clear stops and forgets the value.
func (c *Countdown) Clear() {
	c.running = false
	c.set = false
	c.remaining = 0
}

func (c *Countdown) Reset(seconds int) {
	c.Stop()
	c.Start(seconds)
}

// Tick decrements a running countdown; it reports whether this tick expired it.
func (c *Countdown) Tick() bool {
	if !c.running {
		return false
	}
	c.remaining--
	if c.remaining > 0 {
		return false
	}
	c.remaining = 0
	c.running = false
	if c.onExpire != nil {
		c.onExpire()
	}
	return true
}

// Remaining returns the seconds left and whether a value is set.
func (c *Countdown) Remaining() (int, bool) { return c.remaining, c.set }

func (c *Countdown) Running() bool { return c.running }

// Expired reports a countdown that reached zero.
func (c *Countdown) Expired() bool { return c.set && !c.running && c.remaining == 0 }

// Generation changes on every Start so schedulers can drop stale ticks.
func (c *Countdown) Generation() int { return c.generation }
