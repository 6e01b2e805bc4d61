package namecheap

import (
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"
)

func copyHeaders(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

// excerpt trims b to at most n bytes for error messages.
func excerpt(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// camelize converts a snake_case field name to the API's CamelCase
// convention: "first_name" -> "FirstName", "address1" -> "Address1".
func camelize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, part := range strings.Split(s, "_") {
		upper := true
		for _, r := range part {
			if upper {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			// title-casing restarts after any non-letter, as in "address1x" -> "Address1X"
			upper = !unicode.IsLetter(r)
		}
	}
	return b.String()
}

// xmlBool parses the API's boolean attribute values ("true", or "Y" for the
// *YN attributes). Anything else is false.
func xmlBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "y", "yes":
		return true
	}
	return false
}

// joinNameservers upper-cases and comma-joins nameserver host names.
func joinNameservers(nameservers []string) string {
	out := make([]string, 0, len(nameservers))
	for _, ns := range nameservers {
		if ns = strings.TrimSpace(ns); ns != "" {
			out = append(out, strings.ToUpper(ns))
		}
	}
	return strings.Join(out, ",")
}
