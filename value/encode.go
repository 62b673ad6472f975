package value

import (
	"sort"
	"strconv"

	"github.com/stewi1014/tnets/frame"
)

// Encode returns the tnetstring encoding of v.
// Dict keys are written in ascending order, so equal trees always encode to equal bytes.
// A nil Value encodes as Null.
func Encode(v Value) []byte {
	return Append(nil, v)
}

// Append appends the tnetstring encoding of v to dst.
func Append(dst []byte, v Value) []byte {
	switch v := v.(type) {
	case nil, Null:
		return frame.Append(dst, frame.Null, nil)

	case Bool:
		if v {
			return append(dst, "4:true!"...)
		}
		return append(dst, "5:false!"...)

	case String:
		return frame.AppendString(dst, frame.String, string(v))

	case Int:
		var buff [20]byte
		return frame.Append(dst, frame.Int, strconv.AppendInt(buff[:0], int64(v), 10))

	case Float:
		var buff [32]byte
		return frame.Append(dst, frame.Float, strconv.AppendFloat(buff[:0], float64(v), 'f', -1, 64))

	case List:
		var body []byte
		for _, elem := range v {
			body = Append(body, elem)
		}
		return frame.Append(dst, frame.List, body)

	case Dict:
		var body []byte
		for _, key := range v.Keys() {
			body = frame.AppendString(body, frame.String, key)
			body = Append(body, v[key])
		}
		return frame.Append(dst, frame.Dict, body)
	}

	panic("value: cannot encode " + v.Kind().String())
}

// Keys returns the keys of d in ascending order.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
