package rpc

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/pairjump/internal/dispatcher"
)

// Encoding names how the character field of a position counts.
type Encoding string

// Position encodings.
const (
	EncodingUTF8  Encoding = "utf-8"
	EncodingUTF16 Encoding = "utf-16"
)

// Position is a 0-based line and character.
type Position struct {
	Line      int
	Character int
}

// Request is one decoded request line.
type Request struct {
	// ID is the raw JSON of the id field, "null" when absent.
	ID       string
	Method   string
	Text     string
	HasText  bool
	Cursors  []Position
	Encoding Encoding
	Count    int
}

// DecodeRequest parses one request line.
func DecodeRequest(line []byte) (*Request, error) {
	if !gjson.ValidBytes(line) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedRequest)
	}
	root := gjson.ParseBytes(line)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: request must be an object", ErrMalformedRequest)
	}

	req := &Request{ID: "null", Encoding: EncodingUTF8}
	if id := root.Get("id"); id.Exists() {
		req.ID = id.Raw
	}

	method := root.Get("method")
	if method.Type != gjson.String || method.Str == "" {
		return req, ErrMissingMethod
	}
	req.Method = method.Str

	if text := root.Get("text"); text.Exists() {
		if text.Type != gjson.String {
			return req, fmt.Errorf("%w: text must be a string", ErrMalformedRequest)
		}
		req.Text, req.HasText = text.Str, true
	}

	if enc := root.Get("encoding"); enc.Exists() {
		switch Encoding(enc.String()) {
		case EncodingUTF8, "utf8", "":
			req.Encoding = EncodingUTF8
		case EncodingUTF16, "utf16":
			req.Encoding = EncodingUTF16
		default:
			return req, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc.String())
		}
	}

	if count := root.Get("count"); count.Exists() {
		if count.Type != gjson.Number || count.Int() < 0 {
			return req, fmt.Errorf("%w: count must be a non-negative number", ErrMalformedRequest)
		}
		req.Count = int(count.Int())
	}

	if cursors := root.Get("cursors"); cursors.Exists() {
		if !cursors.IsArray() {
			return req, fmt.Errorf("%w: cursors must be an array", ErrInvalidCursor)
		}
		var err error
		cursors.ForEach(func(_, c gjson.Result) bool {
			line, char := c.Get("line"), c.Get("character")
			if line.Type != gjson.Number || char.Type != gjson.Number || line.Int() < 0 || char.Int() < 0 {
				err = fmt.Errorf("%w: %s", ErrInvalidCursor, c.Raw)
				return false
			}
			req.Cursors = append(req.Cursors, Position{Line: int(line.Int()), Character: int(char.Int())})
			return true
		})
		if err != nil {
			return req, err
		}
		if req.Cursors == nil {
			req.Cursors = []Position{}
		}
	}

	return req, nil
}

// encodeResult builds a success response carrying cursors.
func encodeResult(id, status string, cursors []Position) []byte {
	out := newResponse(id)
	out, _ = sjson.SetBytes(out, "status", status)
	return setCursors(out, cursors)
}

// encodeValue builds a success response with one extra field.
func encodeValue(id, key string, value any) []byte {
	out := newResponse(id)
	out, _ = sjson.SetBytes(out, "status", "ok")
	out, _ = sjson.SetBytes(out, key, value)
	return out
}

// encodeError builds an error response.
func encodeError(id string, err error) []byte {
	out := newResponse(id)
	out, _ = sjson.SetBytes(out, "error.message", err.Error())
	return out
}

func newResponse(id string) []byte {
	out, err := sjson.SetRawBytes([]byte(`{}`), "id", []byte(id))
	if err != nil {
		out = []byte(`{"id":null}`)
	}
	return out
}

func setCursors(out []byte, cursors []Position) []byte {
	out, _ = sjson.SetRawBytes(out, "cursors", []byte(`[]`))
	for _, c := range cursors {
		elem, _ := sjson.SetBytes([]byte(`{}`), "line", c.Line)
		elem, _ = sjson.SetBytes(elem, "character", c.Character)
		out, _ = sjson.SetRawBytes(out, "cursors.-1", elem)
	}
	return out
}

// topActionCount is the number of per-action entries in a metrics response.
const topActionCount = 10

// encodeMetrics builds a metrics response: the collector totals under
// "metrics" and the most dispatched actions under "top_actions".
func encodeMetrics(id string, m *dispatcher.Metrics) []byte {
	out := encodeValue(id, "metrics", m.Snapshot())
	out, _ = sjson.SetRawBytes(out, "top_actions", []byte(`[]`))
	for _, am := range m.TopActions(topActionCount) {
		elem, _ := sjson.SetBytes([]byte(`{}`), "name", am.Name)
		elem, _ = sjson.SetBytes(elem, "count", am.DispatchCount)
		elem, _ = sjson.SetBytes(elem, "errors", am.ErrorCount)
		elem, _ = sjson.SetBytes(elem, "error_rate", am.ErrorRate())
		elem, _ = sjson.SetBytes(elem, "average_us", am.AverageActionDuration().Microseconds())
		out, _ = sjson.SetRawBytes(out, "top_actions.-1", elem)
	}
	return out
}
