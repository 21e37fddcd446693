package utils

import (
	"strings"
	"unicode"
)

// Kebab converts an identifier to kebab-case, the form used for CLI flag names.
// It splits camelCase boundaries (including acronym runs), treats underscores,
// dots, and spaces as separators, and lowercases the result.
//
// Examples:
//   - "userId" -> "user-id"
//   - "user_id" -> "user-id"
//   - "APIKey" -> "api-key"
//   - "HTTPServerID" -> "http-server-id"
//   - "already-kebab" -> "already-kebab"
func Kebab(name string) string {
	if name == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(name) + 4)

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '.' || r == ' ' || r == '-':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				// camelCase boundary: fooBar -> foo-bar
				b.WriteByte('-')
			} else if i > 0 && unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				// end of an acronym run: APIKey -> api-key
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}

	// Collapse runs of dashes and trim the ends
	out := b.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return strings.Trim(out, "-")
}

// Humanize turns a path segment into a readable phrase: separators become
// spaces and the first letter is capitalized.
//
// Examples:
//   - "user-profiles" -> "User profiles"
//   - "api_keys" -> "Api keys"
//   - "widgets" -> "Widgets"
func Humanize(segment string) string {
	if segment == "" {
		return ""
	}

	replaced := strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(segment)
	words := strings.Fields(replaced)
	if len(words) == 0 {
		return ""
	}

	phrase := strings.Join(words, " ")
	runes := []rune(phrase)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// SingularKey canonicalizes a noun for comparison purposes by lowercasing it
// and stripping a trailing "s". "Users" and "user" share the key "user".
func SingularKey(noun string) string {
	key := strings.ToLower(noun)
	if len(key) > 1 && strings.HasSuffix(key, "s") {
		key = strings.TrimSuffix(key, "s")
	}
	return key
}
