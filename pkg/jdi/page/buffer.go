package page

import (
	"bytes"
	"fmt"
	"net/http"
)

// Buffer is a Response that holds header and body until Send.
// Headers set after body writes still reach the client, and a failed run
// never leaves a partial body on the wire.
type Buffer struct {
	header http.Header
	body   bytes.Buffer
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{header: make(http.Header)}
}

// Header returns the buffered header map.
func (b *Buffer) Header() http.Header {
	return b.header
}

// Write appends to the buffered body.
func (b *Buffer) Write(p []byte) (int, error) {
	return b.body.Write(p)
}

// Body returns the buffered body.
func (b *Buffer) Body() []byte {
	return b.body.Bytes()
}

// Send copies the header to w, writes a 200 status, then writes the body.
func (b *Buffer) Send(w http.ResponseWriter) error {
	dst := w.Header()
	for k, v := range b.header {
		dst[k] = append([]string(nil), v...)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b.body.Bytes()); err != nil {
		return fmt.Errorf("send body: %w", err)
	}
	return nil
}
