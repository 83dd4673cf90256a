package dom

import (
	"time"
)

// FrameCallback runs once on the next Tick. Continuous animations request a
// new frame from inside the callback.
type FrameCallback func(ts time.Duration)

type FrameHandle uint64

type TimerHandle uint64

type timer struct {
	handle   TimerHandle
	due      time.Duration
	interval time.Duration
	repeat   bool
	fn       func()
}

func (d *Document) RequestAnimationFrame(cb FrameCallback) FrameHandle {
	h := FrameHandle(d.handle())
	d.frames[h] = cb
	d.frameOrder = append(d.frameOrder, h)

	return h
}

func (d *Document) CancelAnimationFrame(h FrameHandle) bool {
	if _, ok := d.frames[h]; !ok {
		return false
	}
	delete(d.frames, h)

	for i, other := range d.frameOrder {
		if other == h {
			d.frameOrder = append(d.frameOrder[:i], d.frameOrder[i+1:]...)
			break
		}
	}
	return true
}

// Tick runs every frame callback that was pending when it started and
// returns how many ran.
func (d *Document) Tick(ts time.Duration) int {
	defer d.acquire()()

	pending := d.frameOrder
	d.frameOrder = nil

	ran := 0
	for _, h := range pending {
		cb, ok := d.frames[h]
		if !ok {
			continue
		}
		delete(d.frames, h)
		cb(ts)
		ran++
	}

	return ran
}

func (d *Document) SetTimeout(delay time.Duration, fn func()) TimerHandle {
	return d.addTimer(delay, false, fn)
}

// SetInterval fires fn every interval, clamped to at least one millisecond.
func (d *Document) SetInterval(interval time.Duration, fn func()) TimerHandle {
	return d.addTimer(interval, true, fn)
}

func (d *Document) addTimer(delay time.Duration, repeat bool, fn func()) TimerHandle {
	if delay < time.Millisecond {
		delay = time.Millisecond
	}

	h := TimerHandle(d.handle())
	d.timers[h] = &timer{
		handle:   h,
		due:      d.now + delay,
		interval: delay,
		repeat:   repeat,
		fn:       fn,
	}

	return h
}

func (d *Document) ClearTimer(h TimerHandle) bool {
	if _, ok := d.timers[h]; !ok {
		return false
	}
	delete(d.timers, h)
	return true
}

// Now returns the virtual clock.
func (d *Document) Now() time.Duration {
	return d.now
}

// Advance moves the virtual clock forward by step, firing due timers in
// deadline order, and returns how many fired.
func (d *Document) Advance(step time.Duration) int {
	defer d.acquire()()

	target := d.now + step
	fired := 0

	for {
		next := d.nextDue(target)
		if next == nil {
			break
		}

		d.now = next.due
		if next.repeat {
			next.due += next.interval
		} else {
			delete(d.timers, next.handle)
		}
		next.fn()
		fired++
	}

	d.now = target
	return fired
}

func (d *Document) nextDue(limit time.Duration) *timer {
	var next *timer
	for _, t := range d.timers {
		if t.due > limit {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.handle < next.handle) {
			next = t
		}
	}
	return next
}
