// Package message models JDI (JSON Data Interchange) messages.
//
// Every message carries a layout naming the shape of its payload. Requests
// add a context; responses add a status code and a status message. Messages
// encode in a full form with every field, or a compact form that keeps only
// the payload and status when they are set.
package message

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// field is one root key of an encoded message.
type field struct {
	name    string
	value   any
	compact bool
}

// Message is a generic JDI message.
type Message struct {
	// Layout names the payload's shape. Nil encodes as null.
	Layout *string
	// Payload is the message data.
	Payload any
}

// New builds a Message from init, which may be nil, a JSON document as
// []byte or string, an io.Reader yielding JSON, a map[string]any, or another
// message.
func New(init any) (*Message, error) {
	doc, err := document(init)
	if err != nil {
		return nil, err
	}
	m := &Message{}
	if err := m.load(doc); err != nil {
		return nil, err
	}
	return m, nil
}

// WithPayload returns a Message whose layout is detected from payload.
func WithPayload(payload any) *Message {
	m := &Message{Payload: payload}
	if layout := DetectLayout(payload); layout != "" {
		m.Layout = &layout
	}
	return m
}

// LayoutName returns the layout, or "" when unset.
func (m *Message) LayoutName() string {
	if m.Layout == nil {
		return ""
	}
	return *m.Layout
}

func (m *Message) load(doc map[string]any) error {
	switch v := doc["layout"].(type) {
	case nil:
		m.Layout = nil
	case string:
		m.Layout = &v
	default:
		return fmt.Errorf("layout must be a string, got %T", v)
	}
	m.Payload = doc["payload"]
	return nil
}

func (m *Message) fields() []field {
	return []field{
		{name: "layout", value: optional(m.Layout)},
		{name: "payload", value: m.Payload, compact: true},
	}
}

// Encode returns the JSON form of the message.
func (m *Message) Encode(compact bool) ([]byte, error) {
	return encode(m.fields(), compact)
}

// MarshalJSON implements json.Marshaler with the full form.
func (m *Message) MarshalJSON() ([]byte, error) {
	return m.Encode(false)
}

// String returns the full JSON form, or "" if it cannot be encoded.
func (m *Message) String() string {
	return stringOf(m.Encode(false))
}

// Request is a JDI request message.
type Request struct {
	Message
	// Context carries caller-supplied request context.
	Context any
}

// NewRequest builds a Request from init. See New for accepted inputs.
func NewRequest(init any) (*Request, error) {
	doc, err := document(init)
	if err != nil {
		return nil, err
	}
	r := &Request{}
	if err := r.load(doc); err != nil {
		return nil, err
	}
	r.Context = doc["context"]
	return r, nil
}

func (r *Request) fields() []field {
	return append(r.Message.fields(), field{name: "context", value: r.Context})
}

// Encode returns the JSON form of the request.
func (r *Request) Encode(compact bool) ([]byte, error) {
	return encode(r.fields(), compact)
}

// MarshalJSON implements json.Marshaler with the full form.
func (r *Request) MarshalJSON() ([]byte, error) {
	return r.Encode(false)
}

// String returns the full JSON form, or "" if it cannot be encoded.
func (r *Request) String() string {
	return stringOf(r.Encode(false))
}

// Response is a JDI response message.
type Response struct {
	Message
	// Status is the response status code. Default StatusOK.
	Status int
	// Text is the human-readable status message. Nil encodes as null.
	Text *string
}

// NewResponse builds a Response from init. See New for accepted inputs.
func NewResponse(init any) (*Response, error) {
	doc, err := document(init)
	if err != nil {
		return nil, err
	}
	r := &Response{}
	if err := r.load(doc); err != nil {
		return nil, err
	}

	switch v := doc["status"].(type) {
	case nil:
		r.Status = StatusOK
	case int:
		r.Status = v
	case int64:
		r.Status = int(v)
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("status must be an integer, got %v", v)
		}
		r.Status = int(v)
	default:
		return nil, fmt.Errorf("status must be an integer, got %T", v)
	}

	switch v := doc["message"].(type) {
	case nil:
	case string:
		r.Text = &v
	default:
		return nil, fmt.Errorf("message must be a string, got %T", v)
	}
	return r, nil
}

// StatusText returns Text when set, otherwise the standard text for Status.
func (r *Response) StatusText() string {
	if r.Text != nil {
		return *r.Text
	}
	return StatusText(r.Status)
}

func (r *Response) fields() []field {
	return append(r.Message.fields(),
		field{name: "status", value: r.Status, compact: true},
		field{name: "message", value: optional(r.Text)},
	)
}

// Encode returns the JSON form of the response.
func (r *Response) Encode(compact bool) ([]byte, error) {
	return encode(r.fields(), compact)
}

// MarshalJSON implements json.Marshaler with the full form.
func (r *Response) MarshalJSON() ([]byte, error) {
	return r.Encode(false)
}

// String returns the full JSON form, or "" if it cannot be encoded.
func (r *Response) String() string {
	return stringOf(r.Encode(false))
}

// encode writes fields as a JSON object in declaration order.
// Compact output keeps only compact fields with non-nil values.
func encode(fields []field, compact bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, f := range fields {
		if compact && (!f.compact || f.value == nil) {
			continue
		}
		key, _ := json.Marshal(f.name)
		val, err := json.Marshal(f.value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.name, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// document normalizes an initializer into a decoded JSON object.
func document(init any) (map[string]any, error) {
	switch v := init.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	case []byte:
		return decode(bytes.NewReader(v))
	case string:
		return decode(bytes.NewReader([]byte(v)))
	case io.Reader:
		return decode(v)
	case *Message:
		return map[string]any{"layout": optional(v.Layout), "payload": v.Payload}, nil
	case *Request:
		return map[string]any{"layout": optional(v.Layout), "payload": v.Payload, "context": v.Context}, nil
	case *Response:
		return map[string]any{
			"layout":  optional(v.Layout),
			"payload": v.Payload,
			"status":  v.Status,
			"message": optional(v.Text),
		}, nil
	}
	return nil, fmt.Errorf("cannot initialize message from %T", init)
}

func decode(r io.Reader) (map[string]any, error) {
	var doc map[string]any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// optional turns a nil *string into an untyped nil so it encodes as null
// and is dropped from compact output.
func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringOf(data []byte, err error) string {
	if err != nil {
		return ""
	}
	return string(data)
}
