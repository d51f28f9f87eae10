package source

// Locator is implemented by readers and writers able to tell where their
// bytes live, as a URL.
type Locator interface {
	Location() string
}

// Location returns the URL of s, or an empty string when s cannot tell.
func Location(s interface{}) string {
	if l, ok := s.(Locator); ok {
		return l.Location()
	}

	return ""
}
