package encode_test

import (
	"errors"
	"math"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/tnets/encode"
	"github.com/stewi1014/tnets/shape"
	"github.com/stewi1014/tnets/tnio"
)

// run calls write on a new Serializer and returns its output.
func run(t *testing.T, write func(s shape.Serializer) error) string {
	t.Helper()
	s := encode.New(-1)
	td.CmpNoError(t, write(s))
	out, err := s.Output()
	td.CmpNoError(t, err)
	return string(out)
}

func TestScalars(t *testing.T) {
	testCases := []struct {
		desc  string
		write func(s shape.Serializer) error
		want  string
	}{
		{desc: "True", write: func(s shape.Serializer) error { return s.Bool(true) }, want: "4:true!"},
		{desc: "False", write: func(s shape.Serializer) error { return s.Bool(false) }, want: "5:false!"},
		{desc: "Int", write: func(s shape.Serializer) error { return s.Int(-12) }, want: "3:-12#"},
		{desc: "Min int", write: func(s shape.Serializer) error { return s.Int(math.MinInt64) }, want: "20:-9223372036854775808#"},
		{desc: "Max uint", write: func(s shape.Serializer) error { return s.Uint(math.MaxUint64) }, want: "20:18446744073709551615#"},
		{desc: "Float32", write: func(s shape.Serializer) error { return s.Float32(0.1) }, want: "3:0.1^"},
		{desc: "Float64", write: func(s shape.Serializer) error { return s.Float64(2.5) }, want: "3:2.5^"},
		{desc: "String", write: func(s shape.Serializer) error { return s.Str("hello") }, want: "5:hello,"},
		{desc: "Multibyte string", write: func(s shape.Serializer) error { return s.Str("héllo") }, want: "6:héllo,"},
		{desc: "Bytes", write: func(s shape.Serializer) error { return s.Bytes([]byte("abc")) }, want: "3:abc,"},
		{desc: "Unit", write: func(s shape.Serializer) error { return s.Unit() }, want: "0:~"},
		{desc: "Unit variant", write: func(s shape.Serializer) error { return s.UnitVariant("Unit") }, want: "4:Unit,"},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			td.Cmp(t, run(t, tC.write), tC.want)
		})
	}
}

func TestCompounds(t *testing.T) {
	testCases := []struct {
		desc  string
		write func(s shape.Serializer) error
		want  string
	}{
		{
			desc: "Empty seq",
			write: func(s shape.Serializer) error {
				s.BeginSeq()
				return s.EndSeq()
			},
			want: "0:]",
		},
		{
			desc: "Seq",
			write: func(s shape.Serializer) error {
				s.BeginSeq()
				s.Int(10)
				s.Int(10)
				return s.EndSeq()
			},
			want: "10:2:10#2:10#]",
		},
		{
			desc: "Map",
			write: func(s shape.Serializer) error {
				s.BeginMap()
				s.Str("int")
				s.Int(1)
				s.Str("seq")
				s.BeginSeq()
				s.Str("a")
				s.Str("b")
				s.EndSeq()
				return s.EndMap()
			},
			want: "27:3:int,1:1#3:seq,8:1:a,1:b,]}",
		},
		{
			desc: "Newtype variant",
			write: func(s shape.Serializer) error {
				s.BeginVariant("Newtype")
				s.Int(1)
				return s.EndVariant()
			},
			want: "14:7:Newtype,1:1#}",
		},
		{
			desc: "Tuple variant",
			write: func(s shape.Serializer) error {
				s.BeginVariant("Tuple")
				s.BeginSeq()
				s.Int(1)
				s.Int(2)
				s.EndSeq()
				return s.EndVariant()
			},
			want: "19:5:Tuple,8:1:1#1:2#]}",
		},
		{
			desc: "Struct variant",
			write: func(s shape.Serializer) error {
				s.BeginVariant("Struct")
				s.BeginMap()
				s.Str("a")
				s.Int(1)
				s.EndMap()
				return s.EndVariant()
			},
			want: "20:6:Struct,8:1:a,1:1#}}",
		},
		{
			desc: "Variants in a seq",
			write: func(s shape.Serializer) error {
				s.BeginSeq()
				s.BeginVariant("A")
				s.Int(1)
				s.EndVariant()
				s.UnitVariant("B")
				s.BeginVariant("C")
				s.Unit()
				s.EndVariant()
				return s.EndSeq()
			},
			want: "25:8:1:A,1:1#}1:B,7:1:C,0:~}]",
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			td.Cmp(t, run(t, tC.write), tC.want)
		})
	}
}

func TestStackProblem(t *testing.T) {
	t.Run("Unclosed", func(t *testing.T) {
		s := encode.New(-1)
		td.CmpNoError(t, s.BeginSeq())
		_, err := s.Output()
		td.CmpTrue(t, errors.Is(err, tnio.ErrStackProblem))
	})

	t.Run("Nothing open", func(t *testing.T) {
		s := encode.New(-1)
		td.CmpTrue(t, errors.Is(s.EndMap(), tnio.ErrStackProblem))
	})

	t.Run("Mismatched close", func(t *testing.T) {
		s := encode.New(-1)
		td.CmpNoError(t, s.BeginSeq())
		td.CmpTrue(t, errors.Is(s.EndMap(), tnio.ErrStackProblem))
		td.CmpTrue(t, errors.Is(s.EndVariant(), tnio.ErrStackProblem))
	})

	t.Run("Variant without payload", func(t *testing.T) {
		s := encode.New(-1)
		td.CmpNoError(t, s.BeginVariant("X"))
		td.CmpTrue(t, errors.Is(s.EndVariant(), tnio.ErrStackProblem))
	})

	t.Run("Variant with two payloads", func(t *testing.T) {
		s := encode.New(-1)
		td.CmpNoError(t, s.BeginVariant("X"))
		td.CmpNoError(t, s.Int(1))
		td.CmpNoError(t, s.Int(2))
		td.CmpTrue(t, errors.Is(s.EndVariant(), tnio.ErrStackProblem))
	})

	t.Run("Variant with nested payload", func(t *testing.T) {
		s := encode.New(-1)
		td.CmpNoError(t, s.BeginVariant("X"))
		td.CmpNoError(t, s.BeginSeq())
		td.CmpNoError(t, s.Int(1))
		td.CmpNoError(t, s.Int(2))
		td.CmpNoError(t, s.EndSeq())
		td.CmpNoError(t, s.EndVariant())
		out, err := s.Output()
		td.CmpNoError(t, err)
		td.Cmp(t, string(out), "15:1:X,8:1:1#1:2#]}")
	})

	t.Run("Reset", func(t *testing.T) {
		s := encode.New(-1)
		td.CmpNoError(t, s.BeginSeq())
		td.CmpNoError(t, s.Int(1))
		s.Reset()
		td.CmpNoError(t, s.Unit())
		out, err := s.Output()
		td.CmpNoError(t, err)
		td.Cmp(t, string(out), "0:~")
	})
}

func TestNonUTF8Bytes(t *testing.T) {
	s := encode.New(-1)
	err := s.Bytes([]byte{0xff, 0xfe})
	td.CmpTrue(t, errors.Is(err, tnio.ErrNonUTF8Str))
}

func TestMaxDepth(t *testing.T) {
	s := encode.New(2)
	td.CmpNoError(t, s.BeginSeq())
	td.CmpNoError(t, s.BeginVariant("A"))
	td.CmpTrue(t, errors.Is(s.BeginMap(), tnio.ErrNestingTooDeep))
}

func TestLargeContent(t *testing.T) {
	// Staging buffers grow past their pooled size.
	out := run(t, func(s shape.Serializer) error {
		s.BeginSeq()
		for i := 0; i < 1000; i++ {
			s.Str("abcdefghij")
		}
		return s.EndSeq()
	})
	td.Cmp(t, out[:6], "14000:")
	td.Cmp(t, len(out), 6+14000+1)
}

func BenchmarkSerializer(b *testing.B) {
	s := encode.New(-1)
	for i := 0; i < b.N; i++ {
		s.Reset()
		s.BeginMap()
		s.Str("int")
		s.Int(1)
		s.Str("seq")
		s.BeginSeq()
		s.Str("a")
		s.Str("b")
		s.EndSeq()
		if err := s.EndMap(); err != nil {
			b.Fatal(err)
		}
	}
}
