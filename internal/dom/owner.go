package dom

import (
	"bytes"
	"runtime"
	"strconv"
)

// acquire takes the loop lock for the calling goroutine and returns the
// matching release. A goroutine already on the loop re-enters without
// blocking.
func (d *Document) acquire() func() {
	id := goid()
	if d.owner.Load() == id {
		return func() {}
	}

	d.mu.Lock()
	d.owner.Store(id)

	return func() {
		d.owner.Store(0)
		d.mu.Unlock()
	}
}

// OnLoop reports whether the calling goroutine is currently running on the
// document loop, inside Exclusive or a listener, frame or timer callback.
func (d *Document) OnLoop() bool {
	return d.owner.Load() == goid()
}

var goroutinePrefix = []byte("goroutine ")

// goid parses the current goroutine id from the header of its stack trace.
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	header := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(header, ' '); i > 0 {
		header = header[:i]
	}

	id, err := strconv.ParseUint(string(header), 10, 64)
	if err != nil {
		panic("dom: cannot parse goroutine id from " + strconv.Quote(string(buf[:n])))
	}
	return id
}
