package tnio

import (
	"io"
	"os"
)

// Warnings is where warnings are sent to.
// Tnets keeps going past things like malformed struct tags,
// however I don't want to silently put up with things that seem worrying.
var Warnings io.Writer = os.Stderr
