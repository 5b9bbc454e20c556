// Package responsewriter lets middleware read back the status and body size of a
// response after the handler has returned.
package responsewriter

import "net/http"

// Recorder is shared by every middleware that wraps the same response.
type Recorder struct {
	http.ResponseWriter
	status int
	size   int
	sent   bool
}

// Wrap returns w unchanged when it is already a *Recorder.
func Wrap(w http.ResponseWriter) *Recorder {
	if rec, ok := w.(*Recorder); ok {
		return rec
	}
	return &Recorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader forwards the first status only; net/http would log later ones as
// superfluous.
func (r *Recorder) WriteHeader(status int) {
	if r.sent {
		return
	}
	r.status, r.sent = status, true
	r.ResponseWriter.WriteHeader(status)
}

func (r *Recorder) Write(b []byte) (int, error) {
	r.WriteHeader(http.StatusOK)
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// StatusCode is 200 until a status is sent.
func (r *Recorder) StatusCode() int { return r.status }

// BytesWritten counts body bytes only.
func (r *Recorder) BytesWritten() int { return r.size }

// Written reports whether the status line went out.
func (r *Recorder) Written() bool { return r.sent }

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *Recorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
