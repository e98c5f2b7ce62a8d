package sitefilter

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tfkr-ae/sitefilter/domain"
	"golang.org/x/net/idna"
)

// Normalize extracts the exclusion domain from a raw URL such as a browser tab address.
// The hostname is lowercased (IDN hosts are converted to their ASCII form) and a single
// leading "www." label is removed:
//
//	Normalize("https://www.Example.com/x") // "example.com"
//
// Input that is not an absolute URL fails with ErrInvalidURL; a URL without a hostname
// (mailto:, about:blank) fails with ErrEmptyDomain.
func Normalize(raw string) (domain.Domain, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty string", ErrInvalidURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("%w: %q has no scheme", ErrInvalidURL, raw)
	}
	// Browsers read "https:example.com" and "https:/example.com" as "https://example.com".
	if u.Host == "" && specialSchemes[u.Scheme] {
		rest := strings.TrimLeft(raw[len(u.Scheme)+1:], `/\`)
		if u, err = url.Parse(u.Scheme + "://" + rest); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
		}
	}

	host, err := lowerHost(u.Hostname())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyDomain, raw)
	}

	if err := checkLabels(host); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	return domain.Domain(host), nil
}

// specialSchemes always carry a host, so a browser inserts the missing slashes.
var specialSchemes = map[string]bool{
	"http": true, "https": true, "ws": true, "wss": true, "ftp": true,
}

// lowerHost lowercases ASCII hosts in place and runs everything else through IDNA.
func lowerHost(host string) (string, error) {
	if isASCII(host) {
		return strings.ToLower(host), nil
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("idna: %w", err)
	}
	return strings.ToLower(ascii), nil
}

func checkLabels(host string) error {
	if strings.IndexFunc(host, unicode.IsSpace) != -1 {
		return fmt.Errorf("host %q contains whitespace", host)
	}
	// IPv6 literals have no dot-separated labels to check.
	if strings.Contains(host, ":") {
		return nil
	}
	for _, label := range strings.Split(host, ".") {
		if label == "" {
			return fmt.Errorf("host %q has an empty label", host)
		}
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
