package paths

// Segments extracts the literal segments of a display path, in order. These
// are the names the command tree groups by. Placeholder segments (and mixed
// literal/placeholder segments) are not group names and are dropped.
//
// A bare "/" or an all-placeholder path yields no segments.
func Segments(displayPath string) ([]string, error) {
	tmpl, err := ParseTemplate(displayPath)
	if err != nil {
		return nil, err
	}
	return tmpl.Literals(), nil
}
