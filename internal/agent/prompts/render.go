package prompts

import (
	"strings"
)

// Render substitutes {name} placeholders in template with values[name].
// A placeholder whose name is absent from values stays verbatim, braces
// included, so rendering is idempotent on an already-substituted string.
func Render(template string, values map[string]string) string {
	if len(values) == 0 {
		return template
	}
	pairs := make([]string, 0, len(values)*2)
	for name, v := range values {
		pairs = append(pairs, "{"+name+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
