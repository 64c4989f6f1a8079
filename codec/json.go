package codec

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"
)

const indent = "  "

// JSON uses encoding/json. Select it with -codec json when byte-for-byte
// output must match other Go tooling.
type JSON struct{}

func (JSON) Name() string                        { return "json" }
func (JSON) Marshal(v any) ([]byte, error)       { return json.Marshal(v) }
func (JSON) MarshalIndent(v any) ([]byte, error) { return json.MarshalIndent(v, "", indent) }
func (JSON) Unmarshal(data []byte, v any) error  { return json.Unmarshal(data, v) }

// GoJSON uses github.com/goccy/go-json and is the default.
type GoJSON struct{}

func (GoJSON) Name() string                        { return "go-json" }
func (GoJSON) Marshal(v any) ([]byte, error)       { return gojson.Marshal(v) }
func (GoJSON) MarshalIndent(v any) ([]byte, error) { return gojson.MarshalIndent(v, "", indent) }
func (GoJSON) Unmarshal(data []byte, v any) error  { return gojson.Unmarshal(data, v) }
