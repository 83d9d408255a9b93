package term

// pushQueue holds bytes that are read before any input from the terminal.
type pushQueue struct {
	buf []byte
}

func (q *pushQueue) push(s string) {
	q.buf = append(q.buf, s...)
}

func (q *pushQueue) pop() (byte, bool) {
	if len(q.buf) == 0 {
		return 0, false
	}
	b := q.buf[0]
	q.buf = q.buf[1:]
	if len(q.buf) == 0 {
		q.buf = nil
	}
	return b, true
}

func (q *pushQueue) len() int { return len(q.buf) }
