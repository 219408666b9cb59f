package transport

import (
	"bytes"
	"io"
	"time"
)

// idleRead is slept after a read returns no data, so a reader that does not
// block (or times out immediately) does not spin.
const idleRead = 5 * time.Millisecond

// lineReader assembles lines from a reader whose Read calls return
// periodically (serial ports with VTIME set return 0, io.EOF when idle).
type lineReader struct {
	r       io.Reader
	timeout time.Duration

	pending []byte
	chunk   []byte
}

func newLineReader(r io.Reader, timeout time.Duration) *lineReader {
	return &lineReader{
		r:       r,
		timeout: timeout,
		chunk:   make([]byte, 256),
	}
}

func (l *lineReader) ReadLine() (string, error) {
	deadline := time.Now().Add(l.timeout)
	for {
		for {
			i := bytes.IndexByte(l.pending, '\n')
			if i < 0 {
				break
			}
			line := bytes.TrimSpace(l.pending[:i])
			l.pending = l.pending[i+1:]
			if len(line) > 0 {
				return string(line), nil
			}
		}

		if !time.Now().Before(deadline) {
			return "", ErrTimeout
		}

		n, err := l.r.Read(l.chunk)
		l.pending = append(l.pending, l.chunk[:n]...)
		if err != nil && err != io.EOF {
			return "", err
		}
		if n == 0 {
			time.Sleep(idleRead)
		}
	}
}
