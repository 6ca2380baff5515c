package tabula

import (
	"fmt"

	"github.com/hupe1980/tabula/codec"
	"github.com/hupe1980/tabula/value"
)

// frame is the wire form of a table.
type frame struct {
	Columns []value.Value   `json:"columns"`
	Index   []value.Value   `json:"index"`
	Rows    [][]value.Value `json:"rows"`
}

// Encode serializes t with c (codec.Default when nil). The bytes hold the
// column labels, the row labels and the rows.
func Encode(t *Table, c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	f := frame{
		Columns: t.ColumnLabels(),
		Index:   t.RowLabels(),
		Rows:    t.ToRows(),
	}
	data, err := c.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.Name(), err)
	}
	return data, nil
}

// Decode rebuilds a table written by Encode with the same codec.
func Decode(data []byte, c codec.Codec, opts ...Option) (*Table, error) {
	if c == nil {
		c = codec.Default
	}
	var f frame
	if err := c.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	o := applyOptions(opts)
	o.rowLabels, o.hasRowLabels = f.Index, true
	return fromLines(f.Rows, f.Columns, Rows, o)
}
