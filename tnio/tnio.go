// Package tnio provides io methods relevant to tnetstring encoding, as well as error types.
package tnio

import (
	"errors"
	"fmt"
	"io"
)

// Write writes to w from buff, handling errors of io.Writer with as little overhead as possible.
// In an ideal write, only a single int equality check is performed. Errors from Write() are returned as an IOError.
func Write(buff []byte, w io.Writer) error {
	n, err := w.Write(buff)
	if n == len(buff) {
		if err != nil {
			return NewIOError(err, fmt.Sprintf("after writing all %v bytes", n), 0)
		}
		return nil
	}

	end := n
	for end < len(buff) && err == nil && n > 0 {
		fmt.Fprintf(Warnings, "tnets: %T is a bad io.Writer implementation. It wrote short (given %v bytes but reported only %v written) yet returned no error. Will call it again...\n", w, len(buff)-(end-n), n)
		n, err = w.Write(buff[end:])
		end += n
	}

	if end != len(buff) {
		switch {
		case end > len(buff):
			return NewIOError(
				errors.New("bad io.Writer implementation"),
				fmt.Sprintf("Write() reported %v bytes written, but was only given %v bytes", end, len(buff)),
				0,
			)
		case err == nil:
			return NewIOError(
				io.ErrShortWrite,
				fmt.Sprintf("want %v bytes but only wrote %v bytes", len(buff), end),
				0,
			)
		default:
			return NewIOError(
				err,
				fmt.Sprintf("want %v bytes but wrote %v bytes", len(buff), end),
				0,
			)
		}
	}
	return nil
}
