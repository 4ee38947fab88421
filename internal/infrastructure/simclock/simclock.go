// Package simclock provides the two independent logical clocks of the
// pipeline: a coarse month clock for search progress and a fine hour clock for
// inspections. Both are driven manually by the host's tick callbacks and only
// ever move forward.
package simclock

type Clock struct {
	month int
	hour  int
}

func New() *Clock {
	return &Clock{}
}

func NewAt(month, hour int) *Clock {
	return &Clock{month: month, hour: hour}
}

func (c *Clock) CurrentMonth() int { return c.month }

func (c *Clock) CurrentHour() int { return c.hour }

func (c *Clock) AdvanceMonth() int {
	c.month++
	return c.month
}

func (c *Clock) AdvanceHour() int {
	c.hour++
	return c.hour
}
