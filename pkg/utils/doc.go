// Package utils provides common utility functions used throughout the Concierge codebase.
//
// This package contains shared utilities that are used by multiple packages to avoid
// code duplication and ensure consistent behavior across the application.
//
// # Naming Utilities (naming.go)
//
// The naming utilities convert identifiers from API descriptions into the forms
// a command-line interface presents to users.
//
// ## Kebab
//
// Converts parameter and property names into kebab-case CLI flag names,
// handling camelCase boundaries and acronym runs:
//
//	flag := utils.Kebab("userId")
//	// Result: user-id
//
//	flag = utils.Kebab("APIKey")
//	// Result: api-key
//
// ## Humanize
//
// Turns path segments into readable phrases for synthesized help text:
//
//	help := utils.Humanize("user-profiles")
//	// Result: User profiles
//
// ## SingularKey
//
// Canonicalizes nouns so "user" and "Users" compare equal when detecting a
// shared subject across operation summaries:
//
//	utils.SingularKey("Users") == utils.SingularKey("user")
//
// # Pointer Utilities (ptr.go)
//
// Ptr returns a pointer to any value, which keeps rule-set literals terse:
//
//	rules := paths.RuleSet{StripPrefix: utils.Ptr(false)}
package utils
