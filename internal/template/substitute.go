package template

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Line replaces every placeholder in line with its value from ctx.
//
// "{{" and "}}" produce literal braces. A placeholder name runs up to the
// next closing brace. Every name must resolve; an unterminated "{" or a
// lone "}" is a SyntaxError.
//
// Example:
//
//	Line("give @s music_disc_11{{CustomModelData:{entry.index}}}", ctx)
//	// "give @s music_disc_11{CustomModelData:3}"
func Line(line string, ctx Context) (string, error) {
	var sb strings.Builder
	sb.Grow(len(line))

	for i := 0; i < len(line); i++ {
		switch c := line[i]; c {
		case '{':
			if i+1 < len(line) && line[i+1] == '{' {
				sb.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(line[i+1:], '}')
			if end < 0 {
				return "", &SyntaxError{Line: line, Offset: i, Reason: "unterminated placeholder"}
			}
			name := line[i+1 : i+1+end]
			value, ok := ctx.Lookup(name)
			if !ok {
				return "", &UnresolvedError{Name: name}
			}
			if !utf8.ValidString(value) {
				return "", &EncodingError{Name: name, Value: value}
			}
			sb.WriteString(value)
			i += end + 1
		case '}':
			if i+1 < len(line) && line[i+1] == '}' {
				sb.WriteByte('}')
				i++
				continue
			}
			return "", &SyntaxError{Line: line, Offset: i, Reason: "single '}'"}
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String(), nil
}

// Document substitutes every text leaf of a decoded JSON document.
//
// Objects and arrays are visited recursively and copied; keys and
// non-text leaves (numbers, booleans, null) are kept as they are. The
// input document is not modified.
func Document(doc any, ctx Context) (any, error) {
	switch v := doc.(type) {
	case string:
		return Line(v, ctx)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, child := range v {
			sub, err := Document(child, ctx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out[key] = sub
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			sub, err := Document(child, ctx)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = sub
		}
		return out, nil
	default:
		return v, nil
	}
}

// Path substitutes each segment independently and joins them with the
// platform path separator.
func Path(segments []string, ctx Context) (string, error) {
	parts := make([]string, len(segments))
	for i, seg := range segments {
		part, err := Line(seg, ctx)
		if err != nil {
			return "", fmt.Errorf("path segment %q: %w", seg, err)
		}
		parts[i] = part
	}
	return filepath.Join(parts...), nil
}

// Render copies a text template from r to w, substituting one line at a
// time. Every written line ends with "\n", including a final line that had
// no terminator in the source.
func Render(r io.Reader, w io.Writer, ctx Context) error {
	br := bufio.NewReader(r)
	lineNo := 0

	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}
		if raw == "" && readErr != nil {
			return nil
		}
		lineNo++

		text := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		out, err := Line(text, ctx)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, err := io.WriteString(w, out+"\n"); err != nil {
			return err
		}

		if readErr != nil {
			return nil
		}
	}
}
