// Package codec encodes benchmark reports.
//
// Both built-in codecs emit standard JSON and decode each other's output.
package codec

// Codec marshals values. Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Indenter is implemented by codecs that can pretty-print.
type Indenter interface {
	MarshalIndent(v any) ([]byte, error)
}

// Default is the codec reports are written with.
var Default Codec = GoJSON{}

// ByName returns a built-in codec: "json" or "go-json".
func ByName(name string) (Codec, bool) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Pretty marshals v indented when c supports it, compact otherwise.
func Pretty(c Codec, v any) ([]byte, error) {
	if ind, ok := c.(Indenter); ok {
		return ind.MarshalIndent(v)
	}
	return c.Marshal(v)
}
