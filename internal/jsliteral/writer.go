package jsliteral

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Style selects the output layout.
type Style int

const (
	// Indented writes objects one member per line with two-space
	// indentation, "key : value" separators and inline arrays ("[ a, b ]").
	Indented Style = iota
	// Compact writes no whitespace outside string literals.
	Compact
)

const indentUnit = "  "

// Marshal renders v in the requested style.
func Marshal(v Value, style Style) []byte {
	return Append(nil, v, style)
}

// Append renders v onto dst.
func Append(dst []byte, v Value, style Style) []byte {
	w := writer{buf: dst, pretty: style == Indented}
	w.value(v, 0)
	return w.buf
}

type writer struct {
	buf    []byte
	pretty bool
}

func (w *writer) value(v Value, level int) {
	switch v := v.(type) {
	case *Object:
		w.object(v, level)
	case Array:
		w.array(v, level)
	case String:
		w.buf = appendQuoted(w.buf, string(v))
	case Int:
		w.buf = strconv.AppendInt(w.buf, int64(v), 10)
	case Float:
		w.buf = appendFloat(w.buf, float64(v))
	case Bool:
		w.buf = strconv.AppendBool(w.buf, bool(v))
	case Null, nil:
		w.buf = append(w.buf, "null"...)
	case Ident:
		w.buf = append(w.buf, v...)
	case Regex:
		w.buf = appendRegex(w.buf, v)
	case *Call:
		w.call(v, level)
	default:
		panic(fmt.Sprintf("jsliteral: unsupported value %T", v))
	}
}

func (w *writer) object(o *Object, level int) {
	if o.Len() == 0 {
		if w.pretty {
			w.buf = append(w.buf, "{ }"...)
		} else {
			w.buf = append(w.buf, "{}"...)
		}
		return
	}
	w.buf = append(w.buf, '{')
	for i, m := range o.Members {
		if i > 0 {
			w.buf = append(w.buf, ',')
		}
		if w.pretty {
			w.newline(level + 1)
		}
		w.buf = appendKey(w.buf, m.Key)
		if w.pretty {
			w.buf = append(w.buf, " : "...)
		} else {
			w.buf = append(w.buf, ':')
		}
		w.value(m.Value, level+1)
	}
	if w.pretty {
		w.newline(level)
	}
	w.buf = append(w.buf, '}')
}

// array keeps its elements on the current line; nested objects indent
// relative to the enclosing object, not the array.
func (w *writer) array(a Array, level int) {
	if len(a) == 0 {
		if w.pretty {
			w.buf = append(w.buf, "[ ]"...)
		} else {
			w.buf = append(w.buf, "[]"...)
		}
		return
	}
	w.buf = append(w.buf, '[')
	if w.pretty {
		w.buf = append(w.buf, ' ')
	}
	for i, v := range a {
		if i > 0 {
			w.buf = append(w.buf, ',')
			if w.pretty {
				w.buf = append(w.buf, ' ')
			}
		}
		w.value(v, level)
	}
	if w.pretty {
		w.buf = append(w.buf, ' ')
	}
	w.buf = append(w.buf, ']')
}

func (w *writer) call(c *Call, level int) {
	w.buf = append(w.buf, c.Callee...)
	w.buf = append(w.buf, '(')
	for i, arg := range c.Args {
		if i > 0 {
			w.buf = append(w.buf, ',')
			if w.pretty {
				w.buf = append(w.buf, '\n')
			}
		}
		w.value(arg, level)
	}
	w.buf = append(w.buf, ");"...)
}

func (w *writer) newline(level int) {
	w.buf = append(w.buf, '\n')
	for i := 0; i < level; i++ {
		w.buf = append(w.buf, indentUnit...)
	}
}

func appendKey(dst []byte, key string) []byte {
	if isIdentifier(key) {
		return append(dst, key...)
	}
	return appendQuoted(dst, key)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

const hexDigits = "0123456789abcdef"

func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				dst = append(dst, '\\', '"')
			case '\\':
				dst = append(dst, '\\', '\\')
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			case '\b':
				dst = append(dst, '\\', 'b')
			case '\f':
				dst = append(dst, '\\', 'f')
			default:
				if c < 0x20 || c == 0x7f {
					dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
				} else {
					dst = append(dst, c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			dst = append(dst, `\ufffd`...)
		case r == '\u2028' || r == '\u2029':
			dst = append(dst, `\u202`...)
			dst = append(dst, hexDigits[r&0xf])
		default:
			dst = append(dst, s[i:i+size]...)
		}
		i += size
	}
	return append(dst, '"')
}

func appendFloat(dst []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'g', -1, 64)
	if !strings.ContainsAny(string(dst[start:]), ".e") {
		dst = append(dst, ".0"...)
	}
	return dst
}

// appendRegex writes /pattern/flags, escaping bare slashes and line
// terminators that would end the literal early. A dangling backslash is
// doubled so it cannot swallow the closing slash.
func appendRegex(dst []byte, re Regex) []byte {
	dst = append(dst, '/')
	if re.Pattern == "" {
		dst = append(dst, "(?:)"...)
	}
	inClass, escaped := false, false
	for i := 0; i < len(re.Pattern); i++ {
		c := re.Pattern[i]
		if esc, size := lineTerminator(re.Pattern[i:]); size > 0 {
			if !escaped {
				dst = append(dst, '\\')
			}
			dst = append(dst, esc...)
			escaped = false
			i += size - 1
			continue
		}
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			dst = append(dst, '\\')
		}
		dst = append(dst, c)
	}
	if escaped {
		dst = append(dst, '\\')
	}
	dst = append(dst, '/')
	return append(dst, re.Flags...)
}

// lineTerminator returns the escape body for a JS line terminator at the
// start of s and its encoded size, or size 0.
func lineTerminator(s string) (string, int) {
	switch {
	case s[0] == '\n':
		return "n", 1
	case s[0] == '\r':
		return "r", 1
	case strings.HasPrefix(s, "\u2028"):
		return "u2028", len("\u2028")
	case strings.HasPrefix(s, "\u2029"):
		return "u2029", len("\u2029")
	}
	return "", 0
}
