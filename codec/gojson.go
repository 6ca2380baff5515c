package codec

import gojson "github.com/goccy/go-json"

// GoJSON is the default codec, backed by github.com/goccy/go-json.
//
// It writes plain JSON without HTML escaping, so labels such as "a<b" stay
// readable in encoded frames. JSON reads its output and vice versa.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error) {
	return gojson.MarshalWithOption(v, gojson.DisableHTMLEscape())
}

func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

func (GoJSON) Name() string { return "go-json" }
