package frame

import (
	"io"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/json"
	"github.com/ajitpratap0/tabular/pkg/metrics"
)

// document is the JSON interchange form of a table.
type document struct {
	Names []string `json:"names"`
	Data  [][]Cell `json:"data"`
}

func (t *Table) document() document {
	doc := document{Names: t.names, Data: t.rows}
	if doc.Names == nil {
		doc.Names = []string{}
	}
	if doc.Data == nil {
		doc.Data = [][]Cell{}
	}
	return doc
}

// ToJSON encodes the table as {"names": [...], "data": [[...], ...]}.
// Missing values are written as null.
func (t *Table) ToJSON() ([]byte, error) {
	b, err := json.Marshal(t.document())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to encode table")
	}
	return b, nil
}

// WriteJSON writes the JSON form of the table to w.
func (t *Table) WriteJSON(w io.Writer) error {
	if err := json.MarshalToWriter(w, t.document()); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to encode table")
	}
	return nil
}

// FromJSON decodes a table written by ToJSON. Malformed JSON returns a nil
// table and a data error. Well-formed input with rows of the wrong width
// returns the table together with a validation error, as New does.
func FromJSON(data []byte, opts ...Option) (*Table, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		metrics.RecordOperation("from_json", err)
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to decode table")
	}
	return New(doc.Data, doc.Names, opts...)
}

// ReadJSON decodes a table from r. See FromJSON.
func ReadJSON(r io.Reader, opts ...Option) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read table")
	}
	return FromJSON(data, opts...)
}
