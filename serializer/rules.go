package serializer

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Rule is a single value check attached to a schema field. Check receives
// the raw decoded JSON value (string, float64, bool, nil, map, slice).
type Rule struct {
	Check   func(value any) bool
	Message string
}

// NonEmpty requires a string value with at least one non-space character.
func NonEmpty() Rule {
	return Rule{
		Check: func(value any) bool {
			s, ok := value.(string)
			return ok && strings.TrimSpace(s) != ""
		},
		Message: "must be a non-empty string",
	}
}

// MaxLen limits string length in runes.
func MaxLen(n int) Rule {
	return Rule{
		Check: func(value any) bool {
			s, ok := value.(string)
			return ok && utf8.RuneCountInString(s) <= n
		},
		Message: fmt.Sprintf("must be at most %d characters", n),
	}
}

// MinLen requires a minimum string length in runes.
func MinLen(n int) Rule {
	return Rule{
		Check: func(value any) bool {
			s, ok := value.(string)
			return ok && utf8.RuneCountInString(s) >= n
		},
		Message: fmt.Sprintf("must be at least %d characters", n),
	}
}

// OneOf restricts a string value to a fixed set of choices.
func OneOf(choices ...string) Rule {
	return Rule{
		Check: func(value any) bool {
			s, ok := value.(string)
			return ok && slices.Contains(choices, s)
		},
		Message: fmt.Sprintf("must be one of: %s", strings.Join(choices, ", ")),
	}
}

// Min requires a numeric value of at least n. JSON numbers decode as
// float64.
func Min(n float64) Rule {
	return Rule{
		Check: func(value any) bool {
			f, ok := value.(float64)
			return ok && f >= n
		},
		Message: fmt.Sprintf("must be at least %v", n),
	}
}

// Max requires a numeric value of at most n.
func Max(n float64) Rule {
	return Rule{
		Check: func(value any) bool {
			f, ok := value.(float64)
			return ok && f <= n
		},
		Message: fmt.Sprintf("must be at most %v", n),
	}
}

// Boolean requires a JSON boolean value.
func Boolean() Rule {
	return Rule{
		Check: func(value any) bool {
			_, ok := value.(bool)
			return ok
		},
		Message: "must be a boolean",
	}
}
