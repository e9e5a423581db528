package entities

import "fmt"

// Selector is a CSS selector resolved lazily by the driver each time an
// operation runs against it.
type Selector string

func (s Selector) String() string {
	return string(s)
}

// IndexedSelector builds a selector for the i-th (0-based) element of a list.
type IndexedSelector func(index int) Selector

// NamedSelector builds a selector parameterized by a name or id.
type NamedSelector func(name string) Selector

// NthChild returns an IndexedSelector that formats a 1-based :nth-child
// position into format, which must contain a single %d verb.
func NthChild(format string) IndexedSelector {
	return func(index int) Selector {
		return Selector(fmt.Sprintf(format, index+1))
	}
}

// Named returns a NamedSelector that formats the name into format, which
// must contain a single %s verb.
func Named(format string) NamedSelector {
	return func(name string) Selector {
		return Selector(fmt.Sprintf(format, name))
	}
}

// HasText narrows a selector to elements whose text contains text.
func HasText(base Selector, text string) Selector {
	return Selector(fmt.Sprintf("%s:has-text(%q)", base, text))
}
