package pipeline

import (
	"fmt"
	"strings"
)

// renderTemplate substitutes {name} placeholders in template with values
// from the input map. Placeholder names are lowercase identifiers with
// optional dot paths ({expense_breakdown.rent}); anything else inside
// braces is left untouched so prose and formulas survive. A well-formed
// placeholder with no binding is an error: completeness is not
// pre-validated at definition time, it surfaces here at run time.
func renderTemplate(template string, inputs map[string]string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(template))

	for i := 0; i < len(template); {
		open := strings.IndexByte(template[i:], '{')
		if open < 0 {
			sb.WriteString(template[i:])
			break
		}
		open += i
		sb.WriteString(template[i:open])

		close := strings.IndexByte(template[open:], '}')
		if close < 0 {
			sb.WriteString(template[open:])
			break
		}
		close += open

		name := template[open+1 : close]
		if !isPlaceholderName(name) {
			sb.WriteString(template[open : close+1])
			i = close + 1
			continue
		}

		value, ok := inputs[name]
		if !ok {
			return "", fmt.Errorf("unresolved placeholder {%s}", name)
		}
		sb.WriteString(value)
		i = close + 1
	}

	return sb.String(), nil
}

// isPlaceholderName reports whether s is a valid placeholder: dot-separated
// runs of lowercase letters, digits, and underscores.
func isPlaceholderName(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			switch {
			case r >= 'a' && r <= 'z':
			case r >= '0' && r <= '9':
			case r == '_':
			default:
				return false
			}
		}
	}
	return true
}
