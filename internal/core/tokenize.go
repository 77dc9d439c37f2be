package core

import "strings"

// Tokenize делит строку на слова по ASCII-пробелам. Кавычки не поддерживаются.
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, isASCIISpace)
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
