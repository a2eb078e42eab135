package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseValue converts a string into int, float, or leaves it as string
func ParseValue(s string) any {
	s = strings.TrimSpace(s)

	// try int
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	// try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// ParseFilterArg parses one "field=value" CLI argument into a filter entry.
// Comma-separated values become a membership list, "min:max" a range.
func ParseFilterArg(arg string) (string, any, error) {
	field, raw, found := strings.Cut(arg, "=")
	if !found || field == "" {
		return "", nil, fmt.Errorf("filter %q is not in field=value form", arg)
	}

	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		values := make([]any, 0, len(parts))
		for _, part := range parts {
			values = append(values, ParseValue(part))
		}
		return field, values, nil
	}

	if min, max, ok := strings.Cut(raw, ":"); ok && min != "" && max != "" {
		return field, map[string]any{"min": ParseValue(min), "max": ParseValue(max)}, nil
	}

	return field, ParseValue(raw), nil
}
