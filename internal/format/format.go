// Package format renders elapsed durations through a small template
// language.
//
// Templates mix literal text with specifiers:
//
//	%H  zero-padded hours
//	%M  zero-padded minutes within the hour
//	%S  zero-padded seconds within the minute
//	%s  total whole seconds
//	%f  sub-second digits (default 6, %<n>f for explicit precision)
//	%n  newline      %t  tab      %e  escape      %%  literal percent
//	\n  newline      \t  tab      \e  escape      \\  literal backslash
//
// Sub-second digits are truncated, never rounded: rounding up could
// carry into every higher time component.
package format

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTemplate is the template used when the user supplies none.
const DefaultTemplate = "Elapsed: %H:%M:%S"

// defaultPrecision is the number of sub-second digits for a bare %f.
const defaultPrecision = 6

// maxPrecision bounds an explicit %<n>f precision. Larger values only
// append zeros and risk absurd status lines, so they are rejected the
// same way a numeric overflow is.
const maxPrecision = 1 << 16

// ParseError describes a template that could not be parsed. Pos is the
// byte offset of the offending character.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("template: %s at offset %d", e.Msg, e.Pos)
}

type pieceKind int

const (
	pieceLiteral pieceKind = iota
	pieceHours
	pieceMinutes
	pieceSeconds
	pieceTotalSeconds
	pieceSubseconds
)

type piece struct {
	kind      pieceKind
	literal   string // pieceLiteral only
	precision int    // pieceSubseconds only
}

// Format is a parsed, immutable template. The zero value renders
// nothing; use Parse or Default.
type Format struct {
	pieces   []piece
	newlines int
}

// Default returns the parsed DefaultTemplate.
func Default() *Format {
	return MustParse(DefaultTemplate)
}

// MustParse parses template and panics on error. Intended for
// compile-time-constant templates.
func MustParse(template string) *Format {
	f, err := Parse(template)
	if err != nil {
		panic(err)
	}
	return f
}

// Parse compiles a template. All errors are detected here, before any
// command is spawned, so a bad template can never surface mid-run.
func Parse(template string) (*Format, error) {
	f := &Format{}
	var lit strings.Builder

	flushLiteral := func() {
		if lit.Len() > 0 {
			f.pieces = append(f.pieces, piece{kind: pieceLiteral, literal: lit.String()})
			lit.Reset()
		}
	}
	pushRune := func(r rune) {
		lit.WriteRune(r)
		if r == '\n' {
			f.newlines++
		}
	}
	pushPiece := func(p piece) {
		flushLiteral()
		f.pieces = append(f.pieces, p)
	}

	runes := []rune(template)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '%':
			i++
			if i >= len(runes) {
				return nil, &ParseError{Pos: i - 1, Msg: `"%" not followed by anything`}
			}
			switch c := runes[i]; {
			case c == 'H':
				pushPiece(piece{kind: pieceHours})
			case c == 'M':
				pushPiece(piece{kind: pieceMinutes})
			case c == 'S':
				pushPiece(piece{kind: pieceSeconds})
			case c == 's':
				pushPiece(piece{kind: pieceTotalSeconds})
			case c == 'f':
				pushPiece(piece{kind: pieceSubseconds, precision: defaultPrecision})
			case c == 'n':
				pushRune('\n')
			case c == 't':
				pushRune('\t')
			case c == 'e':
				pushRune('\x1b')
			case c == '%':
				pushRune('%')
			case c >= '0' && c <= '9':
				start := i
				precision := 0
				for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
					precision = precision*10 + int(runes[i]-'0')
					if precision > maxPrecision {
						return nil, &ParseError{Pos: start, Msg: "%f precision too large"}
					}
					i++
				}
				if i >= len(runes) || runes[i] != 'f' {
					return nil, &ParseError{Pos: start - 1, Msg: fmt.Sprintf(`"%%" followed by invalid specifier %q`, runes[start])}
				}
				pushPiece(piece{kind: pieceSubseconds, precision: precision})
			default:
				return nil, &ParseError{Pos: i - 1, Msg: fmt.Sprintf(`"%%" followed by invalid specifier %q`, c)}
			}
		case '\\':
			i++
			if i >= len(runes) {
				return nil, &ParseError{Pos: i - 1, Msg: `"\" not followed by anything`}
			}
			switch runes[i] {
			case 'n':
				pushRune('\n')
			case 't':
				pushRune('\t')
			case 'e':
				pushRune('\x1b')
			case '\\':
				pushRune('\\')
			default:
				return nil, &ParseError{Pos: i - 1, Msg: fmt.Sprintf(`"\" followed by invalid character %q`, runes[i])}
			}
		default:
			pushRune(runes[i])
		}
	}
	flushLiteral()

	return f, nil
}

// Newlines reports how many newlines the rendered text will contain.
// The terminal writer needs this to reposition over a multi-line
// status block.
func (f *Format) Newlines() int {
	return f.newlines
}

// Render produces the display text for an elapsed duration. Rendering
// is deterministic: the same template and duration always yield the
// same string.
func (f *Format) Render(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	var b strings.Builder
	secs := uint64(d / time.Second)
	for _, p := range f.pieces {
		switch p.kind {
		case pieceLiteral:
			b.WriteString(p.literal)
		case pieceHours:
			fmt.Fprintf(&b, "%02d", secs/3600)
		case pieceMinutes:
			fmt.Fprintf(&b, "%02d", secs/60%60)
		case pieceSeconds:
			fmt.Fprintf(&b, "%02d", secs%60)
		case pieceTotalSeconds:
			fmt.Fprintf(&b, "%d", secs)
		case pieceSubseconds:
			renderSubseconds(&b, d, p.precision)
		}
	}
	return b.String()
}

// renderSubseconds writes exactly precision digits of the sub-second
// fraction, truncating (not rounding) and zero-filling past nanosecond
// resolution.
func renderSubseconds(b *strings.Builder, d time.Duration, precision int) {
	frac := uint32(d % time.Second) // nanoseconds within the second
	divisor := uint32(100_000_000)
	for i := 0; i < precision; i++ {
		var digit uint32
		if divisor > 0 {
			digit = frac / divisor
			frac %= divisor
			divisor /= 10
		}
		b.WriteByte('0' + byte(digit))
	}
}
