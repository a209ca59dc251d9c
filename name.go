package comptool

import "regexp"

// Tool names must match ^[A-Za-z0-9_-]+$ (function-calling protocols
// reject anything else).
var illegalNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// FormatToolName maps an arbitrary display name to a protocol-legal tool
// identifier by replacing every illegal character with a hyphen. Total and
// idempotent; for non-empty input the result matches ^[A-Za-z0-9_-]+$.
// Distinct inputs may normalize to the same string; the toolkit logs
// collisions but does not rename (see Toolkit.GetTools).
func FormatToolName(name string) string {
	return illegalNameChars.ReplaceAllString(name, "-")
}
