package allowlist

import "strings"

// AllowList is the set of URL keys permitted for save operations, derived from
// a comma-separated configuration string.
type AllowList struct {
	entries []string
}

// Parse splits raw on the literal comma. Entries are kept verbatim: no
// trimming and no deduplication. An empty string yields a single empty entry,
// so a key of "" is allowed only when the configuration contains an empty
// entry (e.g. a trailing comma).
func Parse(raw string) AllowList {
	return AllowList{entries: strings.Split(raw, ",")}
}

// Allows reports whether key is permitted. Only the candidate is lowercased;
// entries are compared as configured, so an entry containing uppercase letters
// never matches any candidate.
func (a AllowList) Allows(key string) bool {
	candidate := strings.ToLower(key)
	for _, entry := range a.entries {
		if entry == candidate {
			return true
		}
	}
	return false
}

// Entries returns the parsed entries in configuration order.
func (a AllowList) Entries() []string {
	return a.entries
}
