package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// suggestDistance bounds the edit distance of a "did you mean?" hint.
const suggestDistance = 3

// configKeys lists every key Config decodes, sorted so ties in edit
// distance resolve the same way every run. Derived from the toml tags so a
// new field can never be rejected as unknown.
var configKeys = tomlKeys(reflect.TypeFor[Config]())

func tomlKeys(t reflect.Type) []string {
	var keys []string

	for i := range t.NumField() {
		f := t.Field(i)

		if f.Anonymous {
			keys = append(keys, tomlKeys(f.Type)...)
			continue
		}

		if name, _, _ := strings.Cut(f.Tag.Get("toml"), ","); name != "" && name != "-" {
			keys = append(keys, name)
		}
	}

	slices.Sort(keys)

	return keys
}

// checkUnknownKeys reports every key the decoder left untouched, each with a
// suggestion when one is close enough.
func checkUnknownKeys(md *toml.MetaData) error {
	undecoded := md.Undecoded()
	errs := make([]error, 0, len(undecoded))

	for _, key := range undecoded {
		// The format is flat; for a dotted key, suggest against its last part.
		hint := closestMatch(key[len(key)-1], configKeys)
		if hint == "" {
			errs = append(errs, fmt.Errorf("unknown config key %q", key.String()))
			continue
		}

		errs = append(errs, fmt.Errorf("unknown config key %q, did you mean %q?", key.String(), hint))
	}

	return errors.Join(errs...)
}

// closestMatch returns the candidate nearest to word, or "" when none is
// within suggestDistance edits.
func closestMatch(word string, candidates []string) string {
	best, bestDist := "", suggestDistance+1

	for _, c := range candidates {
		if d := levenshtein(word, c); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best
}

// levenshtein is the byte-wise edit distance of a and b, computed over a
// single row.
func levenshtein(a, b string) int {
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(b); j++ {
			sub := diag
			if a[i-1] != b[j-1] {
				sub++
			}

			diag = row[j]
			row[j] = min(row[j]+1, row[j-1]+1, sub)
		}
	}

	return row[len(b)]
}
