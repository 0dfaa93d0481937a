package template

import (
	"bytes"
	"encoding/json"
	"io"
)

// DecodeDocument parses a JSON document keeping numbers as json.Number so
// they are written back unchanged.
func DecodeDocument(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// EncodeDocument writes doc as indented JSON (four spaces) followed by a
// newline. HTML characters are not escaped.
func EncodeDocument(w io.Writer, doc any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
