package backend

import (
	"bufio"
	"io"
)

// wholeLines yields only newline-terminated lines from its source so that a
// chart file still being appended to is never parsed mid-record. An
// unterminated tail is held back until its newline arrives.
type wholeLines struct {
	src     *bufio.Reader
	partial []byte
	ready   []byte
}

var _ io.Reader = (*wholeLines)(nil)

func newWholeLines(r io.Reader) *wholeLines {
	return &wholeLines{src: bufio.NewReader(r)}
}

func (w *wholeLines) Read(b []byte) (int, error) {
	if len(w.ready) == 0 {
		line, err := w.src.ReadBytes('\n')
		w.partial = append(w.partial, line...)
		if err != nil {
			return 0, err
		}
		w.ready, w.partial = w.partial, nil
	}
	n := copy(b, w.ready)
	w.ready = w.ready[n:]
	return n, nil
}

// Pending reports whether an unterminated line has been held back.
func (w *wholeLines) Pending() bool {
	return len(w.partial) > 0
}
