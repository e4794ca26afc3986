package translate

import "strings"

// quote re-renders a decoded string value as a quoted literal, choosing between the configured
// preferred quote character and its alternate by whichever needs fewer escapes, the way prettier's
// own quote-choice heuristic works.
func (t *translator) quote(value string) string {
	preferred, alternate := byte('"'), byte('\'')
	if t.opts.SingleQuote {
		preferred, alternate = alternate, preferred
	}

	q := preferred
	if strings.Count(value, string(preferred)) > strings.Count(value, string(alternate)) {
		q = alternate
	}

	var b strings.Builder
	b.WriteByte(q)
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == q || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte(q)
	return b.String()
}
