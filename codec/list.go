package codec

import (
	"strings"

	"github.com/teekgo/teek/errors"
)

// Tcl list grammar. JoinList and SplitList are exact inverses: for any
// elements es, SplitList(JoinList(es)) == es, including empty strings
// and elements containing whitespace, braces or backslashes.

func isListSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// needsQuoting reports whether elem can appear bare in a list.
func needsQuoting(elem string) bool {
	if elem == "" {
		return true
	}
	if elem[0] == '"' || elem[0] == '{' {
		return true
	}
	for i := 0; i < len(elem); i++ {
		switch elem[i] {
		case ' ', '\t', '\n', '\r', '\v', '\f', '{', '}', '[', ']', '$', ';', '"', '\\':
			return true
		}
	}
	return false
}

// braceable reports whether elem survives brace quoting verbatim.
// Braces must balance (a backslash hides the next character, as the
// splitter will not count it), the element must not end with a lone
// backslash, and it must not contain a backslash-newline sequence.
func braceable(elem string) bool {
	depth := 0
	for i := 0; i < len(elem); i++ {
		switch elem[i] {
		case '\\':
			if i == len(elem)-1 {
				return false
			}
			if elem[i+1] == '\n' {
				return false
			}
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func appendEscaped(b *strings.Builder, elem string) {
	for i := 0; i < len(elem); i++ {
		c := elem[i]
		switch c {
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\v':
			b.WriteString(`\v`)
		case '\f':
			b.WriteString(`\f`)
		case ' ', '{', '}', '[', ']', '$', ';', '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
}

// JoinList builds one Tcl list string from elements. Each element is
// emitted bare when possible, brace-quoted when braces balance, and
// backslash-escaped otherwise.
func JoinList(elems ...string) string {
	var b strings.Builder
	for i, elem := range elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case !needsQuoting(elem):
			b.WriteString(elem)
		case braceable(elem):
			b.WriteByte('{')
			b.WriteString(elem)
			b.WriteByte('}')
		default:
			appendEscaped(&b, elem)
		}
	}
	return b.String()
}

// SplitList parses one Tcl list string into its top-level elements.
// Brace-delimited and backslash-escaped groups are atomic; braced
// content is returned verbatim, bare and quoted elements get backslash
// substitution.
func SplitList(s string) ([]string, error) {
	elems := []string{}
	i := 0
	for {
		for i < len(s) && isListSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			return elems, nil
		}
		var elem string
		var err error
		switch s[i] {
		case '{':
			elem, i, err = parseBraced(s, i)
		case '"':
			elem, i, err = parseQuoted(s, i)
		default:
			elem, i, err = parseBare(s, i)
		}
		if err != nil {
			return nil, err
		}
		if i < len(s) && !isListSpace(s[i]) {
			return nil, errors.BadListSyntax(s, "list element followed by more characters instead of space")
		}
		elems = append(elems, elem)
	}
}

// parseBraced consumes a brace-quoted element starting at s[start] == '{'.
// Content is verbatim; a backslash hides the following character from
// brace counting.
func parseBraced(s string, start int) (string, int, error) {
	depth := 1
	i := start + 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			if i+1 < len(s) {
				i++
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start+1 : i], i + 1, nil
			}
		}
		i++
	}
	return "", i, errors.BadListSyntax(s, "unmatched open brace in list")
}

// parseQuoted consumes a double-quoted element starting at s[start] == '"'.
func parseQuoted(s string, start int) (string, int, error) {
	var b strings.Builder
	i := start + 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			r, next := substBackslash(s, i)
			b.WriteString(r)
			i = next
		case '"':
			return b.String(), i + 1, nil
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return "", i, errors.BadListSyntax(s, "unmatched open quote in list")
}

// parseBare consumes an unquoted element. Backslash escapes are
// substituted and may hide separator characters; braces inside a bare
// word are literal.
func parseBare(s string, start int) (string, int, error) {
	var b strings.Builder
	i := start
	for i < len(s) && !isListSpace(s[i]) {
		if s[i] == '\\' {
			r, next := substBackslash(s, i)
			b.WriteString(r)
			i = next
		} else {
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String(), i, nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// substBackslash performs one Tcl backslash substitution at s[i] == '\\'
// and returns the replacement plus the index just past the sequence.
func substBackslash(s string, i int) (string, int) {
	if i+1 >= len(s) {
		return "\\", i + 1
	}
	c := s[i+1]
	switch c {
	case 'a':
		return "\a", i + 2
	case 'b':
		return "\b", i + 2
	case 'f':
		return "\f", i + 2
	case 'n':
		return "\n", i + 2
	case 'r':
		return "\r", i + 2
	case 't':
		return "\t", i + 2
	case 'v':
		return "\v", i + 2
	case '\n':
		// backslash-newline plus following whitespace collapses to one space
		j := i + 2
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		return " ", j
	case 'x':
		v, n := 0, 0
		for n < 2 && i+2+n < len(s) && isHex(s[i+2+n]) {
			v = v*16 + hexVal(s[i+2+n])
			n++
		}
		if n == 0 {
			return "x", i + 2
		}
		return string(rune(v)), i + 2 + n
	case 'u':
		v, n := 0, 0
		for n < 4 && i+2+n < len(s) && isHex(s[i+2+n]) {
			v = v*16 + hexVal(s[i+2+n])
			n++
		}
		if n == 0 {
			return "u", i + 2
		}
		return string(rune(v)), i + 2 + n
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v, n := 0, 0
		for n < 3 && i+1+n < len(s) && s[i+1+n] >= '0' && s[i+1+n] <= '7' {
			v = v*8 + int(s[i+1+n]-'0')
			n++
		}
		return string(rune(v)), i + 1 + n
	default:
		return string(c), i + 2
	}
}
