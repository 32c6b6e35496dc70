package paper

import (
	"regexp"
	"strings"
)

var (
	blockDollar  = regexp.MustCompile(`\$\$([^$]+)\$\$`)
	inlineDollar = regexp.MustCompile(`\$([^$]+)\$`)
	blockBracket = regexp.MustCompile(`(?s)\\\[(.*?)\\\]`)
	mathCommand  = regexp.MustCompile(`\\[a-zA-Z]+`)
)

var mathPunct = strings.NewReplacer("{", "", "}", "", `\`, "")

// StripMath reduces embedded TeX to plain text: delimiters, commands,
// braces and backslashes are dropped and the rest is kept. The result is
// lossy; "$\frac{1}{2}$" becomes "12".
func StripMath(s string) string {
	if s == "" {
		return ""
	}
	s = blockDollar.ReplaceAllString(s, "$1")
	s = inlineDollar.ReplaceAllString(s, "$1")
	s = blockBracket.ReplaceAllString(s, "$1")
	s = mathCommand.ReplaceAllString(s, "")
	s = mathPunct.Replace(s)
	return strings.TrimSpace(s)
}
