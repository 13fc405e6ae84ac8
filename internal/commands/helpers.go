package commands

import (
	"strings"
)

// splitQuery splits a command argument into the coin query and an optional
// currency code, defaulting to usd.
func splitQuery(argument string) (string, string) {
	fields := strings.Fields(argument)
	switch len(fields) {
	case 0:
		return "", "usd"
	case 1:
		return strings.ToLower(fields[0]), "usd"
	default:
		return strings.ToLower(fields[0]), strings.ToLower(fields[1])
	}
}
