package value

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ToJSON renders v as JSON. Null becomes null, dict keys are sorted,
// and NaN or infinite floats return an error since JSON cannot represent them.
func ToJSON(v Value) ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	writeJSON(stream, v)
	if stream.Error != nil {
		return nil, stream.Error
	}

	return append([]byte(nil), stream.Buffer()...), nil
}

func writeJSON(stream *jsoniter.Stream, v Value) {
	switch v := v.(type) {
	case nil, Null:
		stream.WriteNil()
	case Bool:
		stream.WriteBool(bool(v))
	case String:
		stream.WriteString(string(v))
	case Int:
		stream.WriteInt64(int64(v))
	case Float:
		stream.WriteFloat64(float64(v))
	case List:
		stream.WriteArrayStart()
		for i, elem := range v {
			if i > 0 {
				stream.WriteMore()
			}
			writeJSON(stream, elem)
		}
		stream.WriteArrayEnd()
	case Dict:
		stream.WriteObjectStart()
		for i, key := range v.Keys() {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(key)
			writeJSON(stream, v[key])
		}
		stream.WriteObjectEnd()
	}
}

// MarshalJSON implements json.Marshaler.
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// MarshalJSON implements json.Marshaler.
func (l List) MarshalJSON() ([]byte, error) { return ToJSON(l) }

// MarshalJSON implements json.Marshaler.
func (d Dict) MarshalJSON() ([]byte, error) { return ToJSON(d) }
