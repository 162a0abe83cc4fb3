// Package json_util provides JSON helpers built on goccy/go-json.
package json_util

import (
	"io"

	"github.com/goccy/go-json"
)

// MarshalIndentTo writes v to w as indented JSON. Used by the admin catalog
// export so dumps stay diffable.
func MarshalIndentTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Unmarshal decodes JSON data into v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
