package service

import (
	"strings"
	"unicode"
)

// paperFilename turns a title into a safe download name.
func paperFilename(title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"' || r == ':' || r == '*' || r == '?' || r == '<' || r == '>' || r == '|':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "paper"
	}
	return name + ".docx"
}
