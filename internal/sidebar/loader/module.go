package loader

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

var (
	exportsRe      = regexp.MustCompile(`(?:module\.exports|export\s+default)\s*=?\s*`)
	identifierRe   = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*`)
	declarationFmt = `(?:const|let|var)\s+%s\b[^=]*=\s*`
)

// ExtractModuleLiteral returns the object literal exported by a sidebars
// module, normalized so it decodes as a YAML flow mapping: comments and
// trailing commas are removed, every string is re-quoted as a double-quoted
// scalar, and key separators are followed by a space.
func ExtractModuleLiteral(src []byte) ([]byte, error) {
	clean, err := normalizeModule(src)
	if err != nil {
		return nil, err
	}

	start, err := literalStart(clean)
	if err != nil {
		return nil, err
	}
	end, err := matchBrace(clean, start)
	if err != nil {
		return nil, err
	}
	return clean[start : end+1], nil
}

// literalStart locates the opening brace of the exported object.
func literalStart(src []byte) (int, error) {
	loc := exportsRe.FindIndex(src)
	if loc == nil {
		if i := bytes.IndexByte(src, '{'); i >= 0 {
			return i, nil
		}
		return 0, fmt.Errorf("no object literal found in module")
	}

	rest := src[loc[1]:]
	if len(rest) > 0 && rest[0] == '{' {
		return loc[1], nil
	}

	ident := identifierRe.Find(rest)
	if ident == nil {
		return 0, fmt.Errorf("module export is neither an object literal nor an identifier")
	}
	declRe := regexp.MustCompile(fmt.Sprintf(declarationFmt, regexp.QuoteMeta(string(ident))))
	decl := declRe.FindIndex(src)
	if decl == nil {
		return 0, fmt.Errorf("declaration of exported value %q not found", ident)
	}
	if decl[1] >= len(src) || src[decl[1]] != '{' {
		return 0, fmt.Errorf("exported value %q is not an object literal", ident)
	}
	return decl[1], nil
}

// matchBrace returns the index of the brace closing the one at start.
// Strings are already double-quoted by normalizeModule.
func matchBrace(src []byte, start int) (int, error) {
	depth := 0
	inString := false
	for i := start; i < len(src); i++ {
		c := src[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				if c != '}' {
					return 0, fmt.Errorf("mismatched bracket at offset %d", i)
				}
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unterminated object literal starting at offset %d", start)
}

// normalizeModule rewrites JavaScript source into a YAML-friendly form.
func normalizeModule(src []byte) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(src))

	// pending holds a comma and the whitespace after it until the next
	// significant character shows whether the comma is trailing.
	var pending []byte
	flush := func(next byte) {
		if len(pending) == 0 {
			return
		}
		if next == '}' || next == ']' {
			out.Write(pending[1:])
		} else {
			out.Write(pending)
		}
		pending = nil
	}

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			i--
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := bytes.Index(src[i+2:], []byte("*/"))
			if end < 0 {
				return nil, fmt.Errorf("unterminated block comment at offset %d", i)
			}
			i += end + 3
		case c == '"' || c == '\'' || c == '`':
			value, next, err := readString(src, i)
			if err != nil {
				return nil, err
			}
			flush('"')
			out.WriteString(strconv.Quote(value))
			i = next
		case c == ',':
			flush(',')
			pending = append(pending, ',')
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if c == '\t' {
				c = ' '
			}
			if pending != nil {
				pending = append(pending, c)
			} else {
				out.WriteByte(c)
			}
		case c == ':':
			flush(c)
			out.WriteString(": ")
		default:
			flush(c)
			out.WriteByte(c)
		}
	}
	flush(0)
	return out.Bytes(), nil
}

// readString decodes the JavaScript string literal starting at src[start]
// and returns its value and the index of the closing quote.
func readString(src []byte, start int) (string, int, error) {
	quote := src[start]
	var b strings.Builder
	for i := start + 1; i < len(src); i++ {
		c := src[i]
		switch {
		case c == quote:
			return b.String(), i, nil
		case c == '\\' && i+1 < len(src):
			next, err := readEscape(&b, src, i+1)
			if err != nil {
				return "", 0, err
			}
			i = next
		case quote == '`' && c == '$' && i+1 < len(src) && src[i+1] == '{':
			return "", 0, fmt.Errorf("template expression at offset %d is not supported", i)
		case c == '\n' && quote != '`':
			return "", 0, fmt.Errorf("unterminated string at offset %d", start)
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, fmt.Errorf("unterminated string at offset %d", start)
}

// readEscape decodes the escape sequence whose first character is src[i]
// and returns the index of its last byte.
func readEscape(b *strings.Builder, src []byte, i int) (int, error) {
	switch c := src[i]; c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		if i+1 < len(src) && src[i+1] >= '0' && src[i+1] <= '9' {
			return 0, fmt.Errorf("octal escape at offset %d is not supported", i-1)
		}
		b.WriteByte(0)
	case '\n':
		// line continuation
	case '\r':
		if i+1 < len(src) && src[i+1] == '\n' {
			i++
		}
	case 'x':
		r, err := hexValue(src, i+1, i+3)
		if err != nil {
			return 0, fmt.Errorf("malformed \\x escape at offset %d: %w", i-1, err)
		}
		b.WriteRune(r)
		i += 2
	case 'u':
		r, next, err := readUnicodeEscape(src, i)
		if err != nil {
			return 0, fmt.Errorf("malformed \\u escape at offset %d: %w", i-1, err)
		}
		if utf16.IsSurrogate(r) {
			// A high surrogate must be followed by an escaped low surrogate.
			if next+2 >= len(src) || src[next+1] != '\\' || src[next+2] != 'u' {
				return 0, fmt.Errorf("unpaired surrogate escape at offset %d", i-1)
			}
			low, after, err := readUnicodeEscape(src, next+2)
			if err != nil {
				return 0, fmt.Errorf("malformed \\u escape at offset %d: %w", next+1, err)
			}
			r = utf16.DecodeRune(r, low)
			if r == utf8.RuneError {
				return 0, fmt.Errorf("invalid surrogate pair at offset %d", i-1)
			}
			next = after
		}
		b.WriteRune(r)
		i = next
	default:
		if c >= '1' && c <= '9' {
			return 0, fmt.Errorf("octal escape at offset %d is not supported", i-1)
		}
		b.WriteByte(c)
	}
	return i, nil
}

// readUnicodeEscape reads the digits of a \\uXXXX or \\u{X...} escape whose
// 'u' is at src[i]. It returns the code point and the index of its last byte.
func readUnicodeEscape(src []byte, i int) (rune, int, error) {
	if i+1 < len(src) && src[i+1] == '{' {
		end := bytes.IndexByte(src[i+2:], '}')
		if end < 1 || end > 6 {
			return 0, 0, fmt.Errorf("expected 1 to 6 hex digits in braces")
		}
		r, err := hexValue(src, i+2, i+2+end)
		if err != nil {
			return 0, 0, err
		}
		if r > unicode.MaxRune {
			return 0, 0, fmt.Errorf("code point %X out of range", r)
		}
		return r, i + 2 + end, nil
	}
	r, err := hexValue(src, i+1, i+5)
	if err != nil {
		return 0, 0, err
	}
	return r, i + 4, nil
}

// hexValue parses src[from:to] as hexadecimal digits.
func hexValue(src []byte, from, to int) (rune, error) {
	if to > len(src) {
		return 0, fmt.Errorf("truncated escape")
	}
	v, err := strconv.ParseUint(string(src[from:to]), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex digits %q", src[from:to])
	}
	return rune(v), nil
}
