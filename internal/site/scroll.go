package site

// Sections lists the section ids present on the rendered page, top to bottom.
type Sections []string

// PageSections are the anchors the page always renders.
var PageSections = Sections{"top", "pricing", "results", "booking", "faq"}

// Has reports whether id is a section on the page.
func (s Sections) Has(id string) bool {
	for _, known := range s {
		if known == id {
			return true
		}
	}
	return false
}

// ScrollHref returns the fragment link for id, or "" when no such section
// exists. An unknown id is not an error; the caller just renders nothing.
func (s Sections) ScrollHref(id string) string {
	if !s.Has(id) {
		return ""
	}
	return "#" + id
}
