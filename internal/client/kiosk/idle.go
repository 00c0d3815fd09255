package kiosk

import "context"

// LogoutReason is journaled with every logout.
type LogoutReason string

const (
	ReasonManual     LogoutReason = "manual"
	ReasonInactivity LogoutReason = "inactivity"
)

// Touch records user activity. With a session it restarts the full logout
// countdown; without one it only cancels a pending countdown.
func (c *Controller) Touch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rearmLocked()
}

// rearmLocked replaces the pending idle timer. At most one timer is pending:
// the previous one is stopped and its generation retired before a new one
// is scheduled, so a callback that already started is ignored.
func (c *Controller) rearmLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
	if c.session == nil {
		return
	}
	gen := c.timerGen
	c.timer = c.clock.AfterFunc(c.delay, func() { c.onIdle(gen) })
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
}

func (c *Controller) onIdle(gen uint64) {
	ctx := context.Background()

	c.mu.Lock()
	if gen != c.timerGen || c.session == nil {
		c.mu.Unlock()
		return
	}
	ended := c.resetLocked()
	v, subs := c.changedLocked()
	c.mu.Unlock()

	publish(v, subs)
	c.afterLogout(ctx, ended, ReasonInactivity)
}
