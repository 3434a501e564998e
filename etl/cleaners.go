package etl

import (
	"strings"
)

type CleanFunc func(string) string

func CleanString(str string, cleanFuncs ...CleanFunc) string {
	cleaned := str
	for _, clean := range cleanFuncs {
		cleaned = clean(cleaned)
	}

	return cleaned
}

// RemoveFirst removes the first occurrence of s, wherever it is.
func RemoveFirst(s string) CleanFunc {
	return func(str string) string {
		if s == "" {
			return str
		}
		return strings.Replace(str, s, "", 1)
	}
}

// TrimLines trims every line of str, keeping the line structure.
func TrimLines(str string) string {
	lines := strings.Split(str, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

func FirstLine(str string) string {
	if i := strings.IndexByte(str, '\n'); i >= 0 {
		return str[:i]
	}
	return str
}

func OneLine(str string) string {
	return strings.Replace(str, "\n", " ", -1)
}
