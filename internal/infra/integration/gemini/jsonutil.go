package gemini

import (
	"regexp"
	"strings"
)

var (
	fenceRe     = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	jsonObjRe   = regexp.MustCompile(`(?s)\{.*\}`)
	jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)
)

// StripCodeFences remove cercas markdown que os modelos adoram colocar em
// volta do JSON.
func StripCodeFences(raw string) string {
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

// ExtractJSONObject devolve o primeiro {...} do texto, ou "" se não houver.
// Best-effort: quem chama trata "" como "não veio nada".
func ExtractJSONObject(raw string) string {
	return jsonObjRe.FindString(StripCodeFences(raw))
}

// ExtractJSONArray devolve o primeiro [...] do texto, ou "" se não houver.
func ExtractJSONArray(raw string) string {
	return jsonArrayRe.FindString(StripCodeFences(raw))
}
