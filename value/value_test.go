package value_test

import (
	"errors"
	"math"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/tnets/tnio"
	"github.com/stewi1014/tnets/value"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		desc string
		data string
		want value.Value
		rest string
	}{
		{desc: "Null", data: "0:~", want: value.Null{}},
		{desc: "True", data: "4:true!", want: value.Bool(true)},
		{desc: "False", data: "5:false!", want: value.Bool(false)},
		{desc: "Length 4 bool is true", data: "4:xyz%!", want: value.Bool(true)},
		{desc: "Length 5 bool is false", data: "5:aaaaa!", want: value.Bool(false)},
		{desc: "Empty bool is false", data: "0:!", want: value.Bool(false)},
		{desc: "String", data: "5:hello,", want: value.String("hello")},
		{desc: "Empty string", data: "0:,", want: value.String("")},
		{desc: "String with framing bytes", data: "4:1:a,,", want: value.String("1:a,")},
		{desc: "Int", data: "3:123#", want: value.Int(123)},
		{desc: "Negative int", data: "4:-123#", want: value.Int(-123)},
		{desc: "Max int", data: "19:9223372036854775807#", want: value.Int(math.MaxInt64)},
		{desc: "Min int", data: "20:-9223372036854775808#", want: value.Int(math.MinInt64)},
		{desc: "Float", data: "4:1.25^", want: value.Float(1.25)},
		{desc: "Negative float", data: "4:-0.5^", want: value.Float(-0.5)},
		{desc: "Empty list", data: "0:]", want: value.List{}},
		{desc: "List", data: "10:2:10#2:10#]", want: value.List{value.Int(10), value.Int(10)}},
		{
			desc: "Mixed list",
			data: "18:0:~4:true!1:a,1:1#]",
			want: value.List{value.Null{}, value.Bool(true), value.String("a"), value.Int(1)},
		},
		{desc: "Empty dict", data: "0:}", want: value.Dict{}},
		{
			desc: "Dict",
			data: "27:3:int,1:1#3:seq,8:1:a,1:b,]}",
			want: value.Dict{
				"int": value.Int(1),
				"seq": value.List{value.String("a"), value.String("b")},
			},
		},
		{
			desc: "Dict with repeated key",
			data: "16:1:a,1:1#1:a,1:2#}",
			want: value.Dict{"a": value.Int(2)},
		},
		{
			desc: "Nested",
			data: "16:1:l,9:3:0:}]0:~]}",
			want: value.Dict{"l": value.List{value.List{value.Dict{}}, value.Null{}}},
		},
		{desc: "Trailing input", data: "1:a,3:xyz", want: value.String("a"), rest: "3:xyz"},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			rest, v, err := value.Parse([]byte(tC.data))
			td.CmpNoError(t, err)
			td.Cmp(t, v, tC.want)
			td.Cmp(t, string(rest), tC.rest)
		})
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		desc string
		data string
		want error
	}{
		{desc: "Empty input", data: "", want: tnio.ErrUnableToParseInt},
		{desc: "No length", data: ":a,", want: tnio.ErrUnableToParseInt},
		{desc: "Bad length", data: "x:a,", want: tnio.ErrUnableToParseInt},
		{desc: "One byte short", data: "5:hello", want: tnio.ErrUnableToTake},
		{desc: "Payload short", data: "6:hello,", want: tnio.ErrUnableToTake},
		{desc: "Null with payload", data: "1:a~", want: tnio.ErrNonZeroLengthNull},
		{desc: "Null length mismatch", data: "0:1~", want: tnio.ErrUnknownSegmentType},
		{desc: "Unknown tag", data: "1:a?", want: tnio.ErrUnknownSegmentType},
		{desc: "Bad int", data: "2:1a#", want: tnio.ErrUnableToParseInt},
		{desc: "Int overflow", data: "19:9223372036854775808#", want: tnio.ErrUnableToParseInt},
		{desc: "Bad float", data: "3:1.y^", want: tnio.ErrUnableToParseFloat},
		{desc: "Hex float", data: "5:0x1p4^", want: tnio.ErrUnableToParseFloat},
		{desc: "Upper hex float", data: "6:-0X1P4^", want: tnio.ErrUnableToParseFloat},
		{desc: "Non-string key", data: "11:4:true!1:a,}", want: tnio.ErrFoundNonStringKey},
		{desc: "Int key", data: "8:1:1#1:a,}", want: tnio.ErrFoundNonStringKey},
		{desc: "Dict missing value", data: "4:1:a,}", want: tnio.ErrUnableToParseInt},
		{desc: "List with short element", data: "4:3:ab]", want: tnio.ErrUnableToTake},
		{desc: "Error in nested child", data: "7:4:1:a~]]", want: tnio.ErrNonZeroLengthNull},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			rest, v, err := value.Parse([]byte(tC.data))
			td.CmpTrue(t, errors.Is(err, tC.want), "got %v", err)
			td.Cmp(t, v, nil)
			td.Cmp(t, string(rest), tC.data)
		})
	}
}

func TestParseLossyString(t *testing.T) {
	_, v, err := value.Parse([]byte("3:a\xffb,"))
	td.CmpNoError(t, err)
	td.Cmp(t, v, value.String("a\uFFFDb"))
}

func TestParseDepth(t *testing.T) {
	nested := func(n int) []byte {
		out := []byte("0:]")
		for i := 0; i < n-1; i++ {
			out = value.Append(nil, value.List{mustParse(t, out)})
		}
		return out
	}

	_, _, err := value.ParseDepth(nested(3), 3)
	td.CmpNoError(t, err)

	_, _, err = value.ParseDepth(nested(4), 3)
	td.CmpTrue(t, errors.Is(err, tnio.ErrNestingTooDeep), "got %v", err)

	_, _, err = value.ParseDepth(nested(4), -1)
	td.CmpNoError(t, err)
}

func mustParse(t *testing.T, data []byte) value.Value {
	t.Helper()
	_, v, err := value.Parse(data)
	td.CmpNoError(t, err)
	return v
}

func TestEncode(t *testing.T) {
	testCases := []struct {
		desc string
		v    value.Value
		want string
	}{
		{desc: "Nil", v: nil, want: "0:~"},
		{desc: "Null", v: value.Null{}, want: "0:~"},
		{desc: "True", v: value.Bool(true), want: "4:true!"},
		{desc: "False", v: value.Bool(false), want: "5:false!"},
		{desc: "String", v: value.String("hello"), want: "5:hello,"},
		{desc: "Int", v: value.Int(-42), want: "3:-42#"},
		{desc: "Float", v: value.Float(1.5), want: "3:1.5^"},
		{desc: "Whole float", v: value.Float(3), want: "1:3^"},
		{desc: "List", v: value.List{value.Int(10), value.Int(10)}, want: "10:2:10#2:10#]"},
		{
			desc: "Dict keys sorted",
			v:    value.Dict{"seq": value.List{value.String("a"), value.String("b")}, "int": value.Int(1)},
			want: "27:3:int,1:1#3:seq,8:1:a,1:b,]}",
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			td.Cmp(t, string(value.Encode(tC.v)), tC.want)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	values := []value.Value{
		value.Null{},
		value.Bool(true),
		value.String("héllo"),
		value.Int(math.MinInt64),
		value.Float(0.1),
		value.Float(-1e300),
		value.List{value.List{}, value.Dict{}, value.Null{}},
		value.Dict{
			"a": value.Dict{"b": value.List{value.Int(1), value.Float(2.5)}},
			"":  value.String(""),
		},
	}
	for _, v := range values {
		rest, got, err := value.Parse(value.Encode(v))
		td.CmpNoError(t, err)
		td.Cmp(t, got, v)
		td.Cmp(t, len(rest), 0)
	}
}

func TestToJSON(t *testing.T) {
	v := value.Dict{
		"n":    value.Null{},
		"b":    value.Bool(true),
		"list": value.List{value.Int(1), value.Float(1.5), value.String("x")},
	}

	out, err := value.ToJSON(v)
	td.CmpNoError(t, err)
	td.Cmp(t, string(out), `{"b":true,"list":[1,1.5,"x"],"n":null}`)

	_, err = value.ToJSON(value.Float(math.NaN()))
	td.CmpError(t, err)
}

func TestKindString(t *testing.T) {
	td.Cmp(t, value.DictKind.String(), "dict")
	td.Cmp(t, value.Kind(42).String(), "Kind(42)")
}

func BenchmarkParse(b *testing.B) {
	data := []byte("27:3:int,1:1#3:seq,8:1:a,1:b,]}")
	for i := 0; i < b.N; i++ {
		if _, _, err := value.Parse(data); err != nil {
			b.Fatal(err)
		}
	}
}
