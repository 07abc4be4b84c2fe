package exts

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Reference is a record id that clients may send either as a JSON string or a JSON number.
type Reference string

func (v *Reference) UnmarshalJSON(data []byte) error {
	var raw any
	if err := jsoniter.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case string:
		*v = Reference(val)
	case nil:
		*v = ""
	default:
		*v = Reference(strings.TrimSpace(string(data)))
	}
	return nil
}

func (v Reference) String() string {
	return string(v)
}
