package faturai

import "strings"

// SanitizeJSONResponse removes garbage characters often produced by LLMs,
// such as markdown code fences around the JSON body.
func SanitizeJSONResponse(b []byte) []byte {
	s := strings.TrimSpace(string(b))

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	return []byte(strings.TrimSpace(s))
}
