package decode

import (
	"fmt"

	"github.com/stewi1014/tnets/tnio"
)

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// literal returns the payload of the integer frame at the cursor and the frame's size.
func (d *Deserializer) literal() (string, int, error) {
	payload, tag, size, err := d.next()
	if err != nil {
		return "", 0, err
	}
	if tag != '#' {
		return "", 0, tnio.NewError(tnio.ErrUnableToParseInt, fmt.Sprintf("found tag %q", tag), 1)
	}
	if payload == "" {
		return "", 0, tnio.NewError(tnio.ErrUnableToParseInt, "empty literal", 1)
	}
	return payload, size, nil
}

// parseSigned accumulates digits in T, subtracting them when the literal is negative.
// Values outside T's range wrap.
func parseSigned[T signed](d *Deserializer) (T, error) {
	lit, size, err := d.literal()
	if err != nil {
		return 0, err
	}

	digits := lit
	negative := lit[0] == '-'
	if negative {
		digits = lit[1:]
	}
	if digits == "" {
		return 0, tnio.NewError(tnio.ErrUnableToParseInt, fmt.Sprintf("%q has no digits", lit), 0)
	}

	var n T
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return 0, tnio.NewError(tnio.ErrUnableToParseInt, fmt.Sprintf("%q is not a decimal integer", lit), 0)
		}
		n *= 10
		if negative {
			n -= T(digits[i] - '0')
		} else {
			n += T(digits[i] - '0')
		}
	}

	d.input = d.input[size:]
	return n, nil
}

// parseUnsigned accumulates digits in T. Values outside T's range wrap.
func parseUnsigned[T unsigned](d *Deserializer) (T, error) {
	lit, size, err := d.literal()
	if err != nil {
		return 0, err
	}

	var n T
	for i := 0; i < len(lit); i++ {
		if !isDigit(lit[i]) {
			return 0, tnio.NewError(tnio.ErrUnableToParseInt, fmt.Sprintf("%q is not an unsigned decimal integer", lit), 0)
		}
		n = n*10 + T(lit[i]-'0')
	}

	d.input = d.input[size:]
	return n, nil
}

// Int implements shape.Deserializer.
func (d *Deserializer) Int() (int, error) { return parseSigned[int](d) }

// Int8 implements shape.Deserializer.
func (d *Deserializer) Int8() (int8, error) { return parseSigned[int8](d) }

// Int16 implements shape.Deserializer.
func (d *Deserializer) Int16() (int16, error) { return parseSigned[int16](d) }

// Int32 implements shape.Deserializer.
func (d *Deserializer) Int32() (int32, error) { return parseSigned[int32](d) }

// Int64 implements shape.Deserializer.
func (d *Deserializer) Int64() (int64, error) { return parseSigned[int64](d) }

// Uint implements shape.Deserializer.
func (d *Deserializer) Uint() (uint, error) { return parseUnsigned[uint](d) }

// Uint8 implements shape.Deserializer.
func (d *Deserializer) Uint8() (uint8, error) { return parseUnsigned[uint8](d) }

// Uint16 implements shape.Deserializer.
func (d *Deserializer) Uint16() (uint16, error) { return parseUnsigned[uint16](d) }

// Uint32 implements shape.Deserializer.
func (d *Deserializer) Uint32() (uint32, error) { return parseUnsigned[uint32](d) }

// Uint64 implements shape.Deserializer.
func (d *Deserializer) Uint64() (uint64, error) { return parseUnsigned[uint64](d) }

// Uintptr implements shape.Deserializer.
func (d *Deserializer) Uintptr() (uintptr, error) { return parseUnsigned[uintptr](d) }
