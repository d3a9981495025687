package encode

import "encoding/json"

// recordJSON is the HTTP-facing shape of a record. Field order in the
// array mirrors schema order.
type recordJSON struct {
	Kind   string `json:"kind"`
	Fields []any  `json:"fields"`
}

// MarshalJSON renders the record for the HTTP pull response.
func (r Record) MarshalJSON() ([]byte, error) {
	fields := r.fields
	if fields == nil {
		fields = []any{}
	}
	return json.Marshal(recordJSON{Kind: r.kind.String(), Fields: fields})
}
