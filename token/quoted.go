package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// UnquoteSingle decodes a single-quoted scalar, quotes included.
// Doubled quotes unescape and internal line breaks fold.
func UnquoteSingle(src []byte) (string, error) {
	n := len(src)
	if n < 2 || src[0] != '\'' || src[n-1] != '\'' {
		return "", fmt.Errorf("%w: single-quoted scalar", ErrUnterminated)
	}
	if n == 2 {
		return "", nil
	}
	buf := make([]byte, 0, n-2)
	i := 1
	for i < n-1 {
		c := src[i]
		switch c {
		case '\'':
			if i+1 < n-1 && src[i+1] == '\'' {
				buf = append(buf, '\'')
				i += 2
				continue
			}
			return "", fmt.Errorf("%w: quote inside single-quoted scalar", ErrUnterminated)
		case '\n':
			buf, i = foldBreak(src, i, n-1, buf)
		default:
			buf = append(buf, c)
			i++
		}
	}
	return string(buf), nil
}

// UnquoteDouble decodes a double-quoted scalar, quotes included,
// applying the YAML escape set and flow folding.
func UnquoteDouble(src []byte) (string, error) {
	n := len(src)
	if n < 2 || src[0] != '"' || src[n-1] != '"' {
		return "", fmt.Errorf("%w: double-quoted scalar", ErrUnterminated)
	}
	buf := make([]byte, 0, n-2)
	i := 1
	for i < n-1 {
		c := src[i]
		switch c {
		case '\\':
			var err error
			buf, i, err = unescape(src, i, n-1, buf)
			if err != nil {
				return "", err
			}
		case '\n':
			buf, i = foldBreak(src, i, n-1, buf)
		default:
			buf = append(buf, c)
			i++
		}
	}
	return string(buf), nil
}

// foldBreak handles a line break inside a flow scalar at src[i]:
// whitespace around the break is dropped, a single break folds to a
// space and k consecutive breaks fold to k-1 newlines.
func foldBreak(src []byte, i, end int, buf []byte) ([]byte, int) {
	for len(buf) > 0 {
		switch buf[len(buf)-1] {
		case ' ', '\t':
			buf = buf[:len(buf)-1]
			continue
		}
		break
	}
	breaks := 0
	for i < end {
		switch src[i] {
		case '\n':
			breaks++
			i++
		case ' ', '\t', '\r':
			i++
		default:
			goto done
		}
	}
done:
	if breaks <= 1 {
		buf = append(buf, ' ')
	} else {
		for k := 1; k < breaks; k++ {
			buf = append(buf, '\n')
		}
	}
	return buf, i
}

func unescape(src []byte, i, end int, buf []byte) ([]byte, int, error) {
	if i+1 >= end {
		return buf, 0, fmt.Errorf("%w: trailing backslash", ErrUnterminated)
	}
	c := src[i+1]
	switch c {
	case '0':
		buf = append(buf, 0)
	case 'a':
		buf = append(buf, '\a')
	case 'b':
		buf = append(buf, '\b')
	case 't', '\t':
		buf = append(buf, '\t')
	case 'n':
		buf = append(buf, '\n')
	case 'v':
		buf = append(buf, '\v')
	case 'f':
		buf = append(buf, '\f')
	case 'r':
		buf = append(buf, '\r')
	case 'e':
		buf = append(buf, 0x1b)
	case ' ':
		buf = append(buf, ' ')
	case '"':
		buf = append(buf, '"')
	case '/':
		buf = append(buf, '/')
	case '\\':
		buf = append(buf, '\\')
	case 'N':
		buf = utf8.AppendRune(buf, 0x85)
	case '_':
		buf = utf8.AppendRune(buf, 0xa0)
	case 'L':
		buf = utf8.AppendRune(buf, 0x2028)
	case 'P':
		buf = utf8.AppendRune(buf, 0x2029)
	case '\n':
		// escaped line break: the break and following indentation
		// vanish
		j := i + 2
		for j < end {
			switch src[j] {
			case ' ', '\t', '\r':
				j++
				continue
			}
			break
		}
		return buf, j, nil
	case 'x':
		return unescapeHex(src, i, end, 2, buf)
	case 'u':
		return unescapeHex(src, i, end, 4, buf)
	case 'U':
		return unescapeHex(src, i, end, 8, buf)
	default:
		return buf, 0, fmt.Errorf("%w: \\%c", ErrBadUnicode, c)
	}
	return buf, i + 2, nil
}

func unescapeHex(src []byte, i, end, width int, buf []byte) ([]byte, int, error) {
	hexStart := i + 2
	if hexStart+width > end {
		return buf, 0, fmt.Errorf("%w: truncated \\%c escape", ErrBadUnicode, src[i+1])
	}
	v, err := strconv.ParseUint(string(src[hexStart:hexStart+width]), 16, 32)
	if err != nil {
		return buf, 0, fmt.Errorf("%w: \\%c%s", ErrBadUnicode, src[i+1], src[hexStart:hexStart+width])
	}
	if width == 2 {
		buf = append(buf, byte(v))
		return buf, hexStart + width, nil
	}
	r := rune(v)
	if utf16.IsSurrogate(r) {
		// a high surrogate may pair with a following \uXXXX
		if r >= 0xd800 && r < 0xdc00 && hexStart+width+6 <= end &&
			src[hexStart+width] == '\\' && src[hexStart+width+1] == 'u' {
			lo, err2 := strconv.ParseUint(string(src[hexStart+width+2:hexStart+width+6]), 16, 32)
			if err2 == nil {
				paired := utf16.DecodeRune(r, rune(lo))
				if paired != utf8.RuneError {
					buf = utf8.AppendRune(buf, paired)
					return buf, hexStart + width + 6, nil
				}
			}
		}
		// unpaired surrogates survive as the replacement rune
		buf = utf8.AppendRune(buf, utf8.RuneError)
		return buf, hexStart + width, nil
	}
	buf = utf8.AppendRune(buf, r)
	return buf, hexStart + width, nil
}

var dqEscapes = map[rune]string{
	0:      `\0`,
	7:      `\a`,
	8:      `\b`,
	9:      `\t`,
	10:     `\n`,
	11:     `\v`,
	12:     `\f`,
	13:     `\r`,
	0x1b:   `\e`,
	'"':    `\"`,
	'\\':   `\\`,
	0x85:   `\N`,
	0xa0:   `\_`,
	0x2028: `\L`,
	0x2029: `\P`,
}

// EscapeDouble renders s as a double-quoted YAML scalar, surrounding
// quotes included. With asJSON set, only JSON escapes are used.
func EscapeDouble(s string, asJSON bool) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i, r := range s {
		if r == utf8.RuneError {
			if _, sz := utf8.DecodeRuneInString(s[i:]); sz == 1 {
				fmt.Fprintf(&b, `\x%02x`, s[i])
				continue
			}
		}
		if !asJSON {
			if esc, ok := dqEscapes[r]; ok {
				b.WriteString(esc)
				continue
			}
		} else {
			switch r {
			case '"', '\\':
				b.WriteByte('\\')
				b.WriteRune(r)
				continue
			case '\b':
				b.WriteString(`\b`)
				continue
			case '\f':
				b.WriteString(`\f`)
				continue
			case '\n':
				b.WriteString(`\n`)
				continue
			case '\r':
				b.WriteString(`\r`)
				continue
			case '\t':
				b.WriteString(`\t`)
				continue
			}
		}
		if r < 0x20 || r == 0x7f {
			if asJSON {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				fmt.Fprintf(&b, `\x%02x`, r)
			}
			continue
		}
		if r >= 0xd800 && r <= 0xdfff {
			fmt.Fprintf(&b, `\u%04x`, r)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// EscapeSingle renders s as a single-quoted YAML scalar, doubling
// internal quotes. The caller must ensure s has no characters that
// require escapes.
func EscapeSingle(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// HasControl reports whether s contains characters that force
// double-quoted style: C0/C1 controls (other than tab and newline) or
// unpaired surrogates.
func HasControl(s string) bool {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, sz := utf8.DecodeRuneInString(s[i:]); sz == 1 {
				return true
			}
		}
		if r == '\t' || r == '\n' {
			continue
		}
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f) {
			return true
		}
		if r >= 0xd800 && r <= 0xdfff {
			return true
		}
	}
	return false
}
