package namecheap

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"
)

// SplitDomain splits a registered domain name into its second-level label
// and its registry suffix: "example.com" -> ("example", "com"),
// "example.co.uk" -> ("example", "co.uk"). Subdomains are dropped. Only
// ICANN suffixes count, so "duckdns.org" -> ("duckdns", "org").
func SplitDomain(name string) (sld, tld string, err error) {
	s := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
	if s == "" {
		return "", "", errors.New("empty domain name")
	}
	tld = icannSuffix(s)
	rest, ok := strings.CutSuffix(s, "."+tld)
	if !ok || rest == "" {
		return "", "", errors.Errorf("splitting domain %q: no second-level label", name)
	}
	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		rest = rest[i+1:]
	}
	if rest == "" {
		return "", "", errors.Errorf("splitting domain %q: empty label", name)
	}
	return rest, tld, nil
}

// icannSuffix returns the public suffix of s, skipping suffixes from the
// private section of the list (e.g. herokuapp.com -> com).
func icannSuffix(s string) string {
	for {
		suffix, icann := publicsuffix.PublicSuffix(s)
		if icann {
			return suffix
		}
		i := strings.IndexByte(suffix, '.')
		if i < 0 {
			// unlisted TLD
			return suffix
		}
		s = suffix[i+1:]
	}
}
