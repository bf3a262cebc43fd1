package admin

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/techipro/konnect-admin/types"
)

// MatchTechnicians keeps the technicians whose username, email or
// category name fuzzily contains pattern, ignoring case and accents.
// An empty pattern keeps everything.
func MatchTechnicians(technicians []types.Technician, pattern string) []types.Technician {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return technicians
	}

	matched := []types.Technician{}
	for _, technician := range technicians {
		candidates := []string{technician.Username, technician.Email}
		if technician.Category != nil {
			candidates = append(candidates, technician.Category.Name)
		}

		if matchAny(pattern, candidates) {
			matched = append(matched, technician)
		}
	}

	return matched
}

// MatchUsers keeps the users whose username or email fuzzily contains pattern
func MatchUsers(users []types.User, pattern string) []types.User {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return users
	}

	matched := []types.User{}
	for _, user := range users {
		if matchAny(pattern, []string{user.Username, user.Email}) {
			matched = append(matched, user)
		}
	}

	return matched
}

func matchAny(pattern string, candidates []string) bool {
	for _, candidate := range candidates {
		if fuzzy.MatchNormalized(pattern, strings.ToLower(candidate)) {
			return true
		}
	}

	return false
}
