package browser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// refAttribute marks the element a has-text query resolved to, so engines
// without native text filters can target it with plain CSS
const refAttribute = "data-pom-ref"

var hasTextPattern = regexp.MustCompile(`:has-text\(("(?:[^"\\]|\\.)*")\)`)

// queryStep is one CSS hop, optionally filtered by contained text
type queryStep struct {
	CSS  string `json:"css"`
	Text string `json:"text,omitempty"`
}

// parseQuery splits sel at each :has-text("...") filter. The first step is
// matched against the document, later ones against descendants of the
// previous matches.
func parseQuery(sel string) ([]queryStep, error) {
	var steps []queryStep
	rest := sel
	for {
		loc := hasTextPattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		css := strings.TrimSpace(rest[:loc[0]])
		if css == "" {
			css = "*"
		}
		text, err := strconv.Unquote(rest[loc[2]:loc[3]])
		if err != nil {
			return nil, fmt.Errorf("bad has-text filter in %q: %w", sel, err)
		}
		steps = append(steps, queryStep{CSS: css, Text: text})
		rest = rest[loc[1]:]
	}
	if tail := strings.TrimSpace(rest); tail != "" || len(steps) == 0 {
		steps = append(steps, queryStep{CSS: tail})
	}
	return steps, nil
}

// hasTextFilter reports whether sel needs resolving in the page
func hasTextFilter(sel string) bool {
	return hasTextPattern.MatchString(sel)
}

// normalizeText collapses whitespace and lowercases, which is how has-text
// compares
func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// resolveScript runs the steps in the page. When mark is set the first
// match gets refAttribute=mark and stale marks are cleared. Returns the
// text content of every match.
const resolveScript = `(q) => {
	const norm = (s) => (s || '').split(/\s+/).filter(Boolean).join(' ').toLowerCase();
	let els = null;
	for (const step of q.steps) {
		let next = [];
		if (els === null) {
			next = Array.from(document.querySelectorAll(step.css));
		} else {
			for (const el of els) {
				for (const c of el.querySelectorAll(':scope ' + step.css)) {
					if (!next.includes(c)) next.push(c);
				}
			}
		}
		if (step.text) {
			const want = norm(step.text);
			next = next.filter((el) => norm(el.textContent).includes(want));
		}
		els = next;
	}
	els = els || [];
	if (q.mark) {
		document.querySelectorAll('[` + refAttribute + `="' + q.mark + '"]').forEach((el) => el.removeAttribute('` + refAttribute + `'));
		if (els.length > 0) els[0].setAttribute('` + refAttribute + `', q.mark);
	}
	return els.map((el) => el.textContent || '');
}`

// resolveArg is the argument passed to resolveScript
func resolveArg(steps []queryStep, mark string) map[string]any {
	return map[string]any{"steps": steps, "mark": mark}
}

// refSelector is the CSS that targets a marked element
func refSelector(mark string) string {
	return fmt.Sprintf(`[%s="%s"]`, refAttribute, mark)
}

// toStrings converts an evaluated JS array of strings
func toStrings(v any) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, _ := item.(string)
		out = append(out, s)
	}
	return out
}
