// Package message models the failure message attached to an
// assertion: either nothing, a literal string, or a template whose
// placeholders are filled from the named arguments of a call.
package message

import (
	"fmt"
	"strings"
)

// Form identifies which variant a Message holds.
type Form int

const (
	// FormNone means no message was configured.
	FormNone Form = iota
	// FormLiteral is a plain string used as-is.
	FormLiteral
	// FormTemplate is resolved against call arguments.
	FormTemplate
)

// String returns the string representation of a form.
func (f Form) String() string {
	switch f {
	case FormNone:
		return "none"
	case FormLiteral:
		return "literal"
	case FormTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// Message is a tagged variant of {None, Literal, Template}. The zero
// value is None.
type Message struct {
	form Form
	text string
}

// None returns the absent message.
func None() Message {
	return Message{}
}

// Literal returns a message that is used verbatim.
func Literal(text string) Message {
	return Message{form: FormLiteral, text: text}
}

// Template returns a message whose $name and ${name} placeholders
// are substituted at call time.
func Template(text string) Message {
	return Message{form: FormTemplate, text: text}
}

// Form reports the variant held by m.
func (m Message) Form() Form {
	return m.form
}

// Text returns the raw text of m, unresolved.
func (m Message) Text() string {
	return m.text
}

// IsNone reports whether m is the absent message.
func (m Message) IsNone() bool {
	return m.form == FormNone
}

// Resolve turns m into a plain string using values for template
// placeholders. The boolean is false when m is None.
func (m Message) Resolve(values map[string]any) (string, bool) {
	switch m.form {
	case FormLiteral:
		return m.text, true
	case FormTemplate:
		return Resolve(m.text, values), true
	default:
		return "", false
	}
}

// String implements fmt.Stringer.
func (m Message) String() string {
	if m.form == FormNone {
		return "<none>"
	}
	return m.text
}

// Resolve substitutes $name and ${name} placeholders in template with
// fmt.Sprint of the matching value. Placeholders without a value and
// malformed $ sequences are kept as written; "$$" becomes "$".
// Resolve never fails.
func Resolve(template string, values map[string]any) string {
	var sb strings.Builder
	sb.Grow(len(template))

	for i := 0; i < len(template); {
		c := template[i]
		if c != '$' {
			sb.WriteByte(c)
			i++
			continue
		}

		rest := template[i+1:]
		switch {
		case strings.HasPrefix(rest, "$"):
			sb.WriteByte('$')
			i += 2

		case strings.HasPrefix(rest, "{"):
			end := strings.IndexByte(rest, '}')
			name := ""
			if end > 0 {
				name = rest[1:end]
			}
			if end < 0 || !isIdentifier(name) {
				sb.WriteByte('$')
				i++
				continue
			}
			raw := template[i : i+end+2]
			sb.WriteString(lookup(values, name, raw))
			i += end + 2

		default:
			n := identifierLength(rest)
			if n == 0 {
				sb.WriteByte('$')
				i++
				continue
			}
			name := rest[:n]
			sb.WriteString(lookup(values, name, "$"+name))
			i += n + 1
		}
	}

	return sb.String()
}

func lookup(values map[string]any, name, raw string) string {
	v, ok := values[name]
	if !ok {
		return raw
	}
	return fmt.Sprint(v)
}

// Identifiers follow [_a-zA-Z][_a-zA-Z0-9]*.
func identifierLength(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		letter := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		digit := c >= '0' && c <= '9'
		if letter || (digit && i > 0) {
			continue
		}
		return i
	}
	return len(s)
}

func isIdentifier(s string) bool {
	return s != "" && identifierLength(s) == len(s)
}
