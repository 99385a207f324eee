// Package kfmt provides formatted output primitives for kernel code. Output
// generated before a console is attached accumulates in a ring buffer and is
// replayed once SetOutputSink installs a destination.
package kfmt

import "io"

// scratchSize defines the buffer size for formatting a single number.
const scratchSize = 20

var (
	errMissingArg   = []byte("%!(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")

	// earlyPrintBuffer stores Printf output emitted before a sink has
	// been attached with SetOutputSink.
	earlyPrintBuffer ringBuffer

	// outputSink is the io.Writer where Printf sends its output. While
	// nil, output is redirected to earlyPrintBuffer.
	outputSink io.Writer
)

// SetOutputSink sets the default target for calls to Printf to w and drains
// any output accumulated in the early print buffer into it.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyPrintBuffer)
	}
}

// GetOutputSink returns the currently active output sink, or nil if output is
// still being captured by the early print buffer.
func GetOutputSink() io.Writer {
	return outputSink
}

// Printf formats its arguments and writes the output to the currently active
// sink. It supports the following subset of the fmt verbs:
//
//	%s	string or []byte value
//	%d	base-10 integer
//	%x	base-16 integer, lower-case digits
//	%t	"true" or "false"
//
// An optional decimal width may precede the verb. Strings and base-10
// integers narrower than the width are left-padded with spaces; base-16
// integers are left-padded with zeroes. All built-in integer types plus
// uintptr are accepted.
func Printf(format string, args ...interface{}) {
	Fprintf(outputSink, format, args...)
}

// Fprintf behaves exactly like Printf but writes the formatted output to w.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var (
		lit     int
		nextArg int
	)

	for i := 0; i < len(format); {
		if format[i] != '%' {
			i++
			continue
		}

		write(w, format[lit:i])
		i++

		// Optional pad width.
		var padLen int
		for ; i < len(format) && format[i] >= '0' && format[i] <= '9'; i++ {
			padLen = padLen*10 + int(format[i]-'0')
		}

		if i == len(format) {
			writeBytes(w, errNoVerb)
			lit = i
			break
		}

		verb := format[i]
		i++
		lit = i

		if verb == '%' {
			write(w, "%")
			continue
		}

		if verb != 's' && verb != 'd' && verb != 'x' && verb != 't' {
			writeBytes(w, errNoVerb)
			// The bad verb still consumes its operand so the
			// remaining arguments keep lining up with the
			// remaining verbs.
			if nextArg < len(args) {
				nextArg++
			}
			continue
		}

		if nextArg >= len(args) {
			writeBytes(w, errMissingArg)
			continue
		}

		switch verb {
		case 's':
			fmtString(w, args[nextArg], padLen)
		case 'd':
			fmtInt(w, args[nextArg], 10, padLen)
		case 'x':
			fmtInt(w, args[nextArg], 16, padLen)
		case 't':
			fmtBool(w, args[nextArg])
		}
		nextArg++
	}

	write(w, format[lit:])

	for ; nextArg < len(args); nextArg++ {
		writeBytes(w, errExtraArg)
	}
}

// fmtBool prints a formatted version of boolean value v.
func fmtBool(w io.Writer, v interface{}) {
	bVal, ok := v.(bool)
	if !ok {
		writeBytes(w, errWrongArgType)
		return
	}

	if bVal {
		write(w, "true")
	} else {
		write(w, "false")
	}
}

// fmtString prints a formatted version of string or []byte value v, applying
// the padding specified by padLen.
func fmtString(w io.Writer, v interface{}, padLen int) {
	switch sVal := v.(type) {
	case string:
		pad(w, ' ', padLen-len(sVal))
		write(w, sVal)
	case []byte:
		pad(w, ' ', padLen-len(sVal))
		writeBytes(w, sVal)
	default:
		writeBytes(w, errWrongArgType)
	}
}

// fmtInt prints out a formatted version of v in the requested base, applying
// the padding specified by padLen. All built-in signed and unsigned integer
// types are supported.
func fmtInt(w io.Writer, v interface{}, base, padLen int) {
	var (
		uval uint64
		neg  bool
	)

	switch iVal := v.(type) {
	case uint8:
		uval = uint64(iVal)
	case uint16:
		uval = uint64(iVal)
	case uint32:
		uval = uint64(iVal)
	case uint64:
		uval = iVal
	case uint:
		uval = uint64(iVal)
	case uintptr:
		uval = uint64(iVal)
	case int8:
		uval, neg = absolute(int64(iVal))
	case int16:
		uval, neg = absolute(int64(iVal))
	case int32:
		uval, neg = absolute(int64(iVal))
	case int64:
		uval, neg = absolute(iVal)
	case int:
		uval, neg = absolute(int64(iVal))
	default:
		writeBytes(w, errWrongArgType)
		return
	}

	var (
		scratch [scratchSize]byte
		pos     = scratchSize
		padCh   = byte(' ')
	)

	if base == 16 {
		padCh = '0'
	}

	for {
		pos--
		digit := byte(uval % uint64(base))
		if digit < 10 {
			scratch[pos] = '0' + digit
		} else {
			scratch[pos] = 'a' + digit - 10
		}

		uval /= uint64(base)
		if uval == 0 {
			break
		}
	}

	if neg && padCh == '0' {
		write(w, "-")
		neg = false
	}

	digits := scratchSize - pos
	if neg {
		digits++
	}
	pad(w, padCh, padLen-digits)

	if neg {
		write(w, "-")
	}
	writeBytes(w, scratch[pos:])
}

// absolute splits a signed value into its magnitude and sign.
func absolute(v int64) (uint64, bool) {
	if v < 0 {
		return uint64(-v), true
	}
	return uint64(v), false
}

// pad writes count bytes with value ch; a non-positive count is a no-op.
func pad(w io.Writer, ch byte, count int) {
	for i := 0; i < count; i++ {
		writeByte(w, ch)
	}
}

func write(w io.Writer, s string) {
	for i := 0; i < len(s); i++ {
		writeByte(w, s[i])
	}
}

var singleByte = []byte{0}

func writeByte(w io.Writer, b byte) {
	singleByte[0] = b
	writeBytes(w, singleByte)
}

func writeBytes(w io.Writer, p []byte) {
	if w == nil {
		earlyPrintBuffer.Write(p)
		return
	}
	w.Write(p)
}
