package matching

import "strings"

// ParseInsurances splits a slot's comma-joined insurance text into trimmed,
// non-empty tags, preserving order.
func ParseInsurances(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := strings.Split(text, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// MatchesClientInsurance reports whether the whole slot insurance string,
// case-folded, contains the client's insurance as a substring. The loose match
// is deliberate: "Blue Cross Blue Shield PPO" must keep matching a client
// value of "Blue Cross", so do not tighten this to exact equality. An empty
// client insurance never matches.
func MatchesClientInsurance(slotInsurance, clientInsurance string) bool {
	if clientInsurance == "" {
		return false
	}
	return strings.Contains(strings.ToLower(slotInsurance), strings.ToLower(clientInsurance))
}
