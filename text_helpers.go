package main

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile("[^a-zA-Z0-9]+")

func replaceSpecialSymbols(input string) string {
	// Replace all non-alphanumeric characters with underscores
	processedString := nonAlphanumeric.ReplaceAllString(input, "_")

	// Remove any underscores at the beginning or end of the string
	return strings.Trim(processedString, "_")
}
