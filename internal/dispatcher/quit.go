package dispatcher

// QuitCounter counts consecutive quit requests on a modified document.
type QuitCounter struct {
	// Times is the number of consecutive requests needed to quit.
	Times int
	// Remaining is how many more requests are needed.
	Remaining int
}

// NewQuitCounter creates a counter that needs times requests. Values
// below one are treated as one.
func NewQuitCounter(times int) QuitCounter {
	times = max(times, 1)
	return QuitCounter{Times: times, Remaining: times}
}

// Reset restores the full count.
func (q *QuitCounter) Reset() {
	q.Remaining = q.Times
}

// SetTimes changes the threshold and resets the count.
func (q *QuitCounter) SetTimes(times int) {
	q.Times = max(times, 1)
	q.Reset()
}

// Press records one quit request and reports whether the threshold has
// been reached.
func (q *QuitCounter) Press() bool {
	if q.Times < 1 {
		return true
	}
	if q.Remaining < 1 || q.Remaining > q.Times {
		q.Remaining = q.Times
	}
	q.Remaining--
	return q.Remaining == 0
}
