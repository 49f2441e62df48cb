package models

import "strings"

// Highlight is a title split into the part before the emphasised fragment,
// the fragment itself and the rest.
type Highlight struct {
	Prefix      string
	Highlighted string
	Suffix      string
}

// SplitHighlight locates the first exact occurrence of fragment in title.
// When fragment is empty or absent the whole title is returned as Prefix.
func SplitHighlight(title, fragment string) Highlight {
	if fragment == "" {
		return Highlight{Prefix: title}
	}
	i := strings.Index(title, fragment)
	if i < 0 {
		return Highlight{Prefix: title}
	}
	return Highlight{
		Prefix:      title[:i],
		Highlighted: fragment,
		Suffix:      title[i+len(fragment):],
	}
}

// String joins the parts back into the original title.
func (h Highlight) String() string {
	return h.Prefix + h.Highlighted + h.Suffix
}
