package apiauth

import "strings"

// RequiresAuth reports whether path needs authentication given a list of
// exclusion rules. Rules are either exact paths or prefix wildcards
// ("prefix*"). An empty path or an empty rule list always requires auth.
//
// Exact rules and the incoming path are normalized with a trailing slash
// before comparison. Wildcard rules compare by raw prefix, the wildcard
// boundary is deliberately not slash-normalized, so "/api/status*" exempts
// "/api/statusX/" as well. First match wins, non-matches are no-ops so
// rule order never changes the result.
func RequiresAuth(path string, excluded []string) bool {
	if path == "" || len(excluded) == 0 {
		return true
	}

	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	for _, rule := range excluded {
		if rule == "" {
			continue
		}

		if strings.HasSuffix(rule, "*") {
			if strings.HasPrefix(path, rule[:len(rule)-1]) {
				return false
			}
			continue
		}

		if !strings.HasSuffix(rule, "/") {
			rule += "/"
		}
		if path == rule {
			return false
		}
	}

	return true
}
