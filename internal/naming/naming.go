// Package naming provides identifier sanitization and case conversion for
// descriptor names. Generated names are target-language neutral: they must be
// valid identifiers (letters, digits, leading letter) without committing to
// any one language's keyword set.
package naming

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// reservedTypeTokens are basic-type tokens that a schema name must not shadow.
// A raw schema name whose PascalCase form lands on one of these is
// disambiguated by the conflict registry (context prefix applied).
var reservedTypeTokens = map[string]bool{
	"Any": true, "Array": true, "Boolean": true, "Byte": true, "Date": true,
	"DateTime": true, "Decimal": true, "Double": true, "Enum": true,
	"File": true, "Float": true, "Integer": true, "List": true, "Long": true,
	"Map": true, "Null": true, "Number": true, "Object": true, "String": true,
	"Tuple": true, "Type": true, "Void": true,
}

// titleCaser capitalizes the first letter of a word without lowering the rest,
// so acronym-style values like "HTTPError" survive member-name derivation.
var titleCaser = cases.Title(language.English, cases.NoLower)

// IsReservedTypeName reports whether name collides with a basic-type token.
func IsReservedTypeName(name string) bool {
	return reservedTypeTokens[name]
}

// ToPascalCase converts a string to PascalCase.
// Any non-alphanumeric rune acts as a separator and triggers capitalization
// of the next letter.
// Example: "user_profile" -> "UserProfile"
// Example: "api-client" -> "ApiClient"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Like PascalCase but with the first letter lowercase.
// Example: "user_profile" -> "userProfile"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ToSnakeCase converts a string to lower snake_case.
// Uppercase letters are prefixed with underscore and lowercased; existing
// separators (hyphen, dot, slash, space) become underscores.
// Example: "UserProfile" -> "user_profile"
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '.' || r == '/' || r == ' ':
			result.WriteRune('_')
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// SanitizeTypeName converts a raw schema name to a valid PascalCase type name.
// It handles special characters and ensures the name starts with a letter.
func SanitizeTypeName(s string) string {
	if s == "" {
		return "Type"
	}

	name := ToPascalCase(s)
	if name == "" {
		return "Type"
	}
	if !unicode.IsLetter(rune(name[0])) {
		name = "T" + name
	}
	return name
}

// SanitizeFieldName converts a raw property name to a valid PascalCase field name.
func SanitizeFieldName(s string) string {
	return SanitizeTypeName(s)
}

// SanitizeParamName converts a raw parameter name to a valid camelCase name.
func SanitizeParamName(s string) string {
	name := SanitizeTypeName(s)
	return strings.ToLower(name[:1]) + name[1:]
}

// EnumMemberName derives an identifier-safe member name from an enum literal.
// Words split on non-alphanumeric runes are title-cased and joined; literals
// that start with a digit are prefixed and an empty literal becomes "Empty".
// The wire value is untouched; callers keep it alongside the member name so
// encoding round-trips.
// Example: "in-progress" -> "InProgress"
// Example: "404" -> "Value404"
func EnumMemberName(literal string) string {
	if literal == "" {
		return "Empty"
	}

	var words []string
	var current strings.Builder
	for _, r := range literal {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	if len(words) == 0 {
		return "Empty"
	}

	var result strings.Builder
	for _, w := range words {
		result.WriteString(titleCaser.String(w))
	}

	name := result.String()
	if !unicode.IsLetter(rune(name[0])) {
		name = "Value" + name
	}
	return name
}

// Dedupe returns name if it is not already taken, otherwise the first
// "name2", "name3", ... that is free. The taken set is not modified.
func Dedupe(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	for i := 2; ; i++ {
		candidate := name + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}
