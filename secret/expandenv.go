package secret

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
)

// ErrMissingEnv is returned when a ${NAME} reference has no value.
var ErrMissingEnv = errors.New("secret: missing required environment variables")

var bracedRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

const dollarSentinel = "\x00TOOLGUARD_DOLLAR\x00"

// ExpandEnvStrict expands s using the process environment.
//
//   - ${NAME} must be set, otherwise ErrMissingEnv names every missing key.
//   - $NAME is expanded leniently and becomes empty when unset.
//   - $$ is a literal $.
func ExpandEnvStrict(s string) (string, error) {
	return Expand(s, os.LookupEnv)
}

// Expand is ExpandEnvStrict with a custom lookup.
func Expand(s string, lookup func(string) (string, bool)) (string, error) {
	s = strings.ReplaceAll(s, "$$", dollarSentinel)

	var missing []string
	for _, m := range bracedRef.FindAllStringSubmatch(s, -1) {
		if _, ok := lookup(m[1]); !ok && !slices.Contains(missing, m[1]) {
			missing = append(missing, m[1])
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	s = os.Expand(s, func(key string) string {
		v, _ := lookup(key)
		return v
	})
	return strings.ReplaceAll(s, dollarSentinel, "$"), nil
}
