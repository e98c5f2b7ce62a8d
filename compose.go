package sitefilter

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultEngine is the search endpoint used when nothing else is configured.
var DefaultEngine = Engine{
	BaseURL: "https://www.google.com/search",
	Param:   "q",
}

// Engine is a search endpoint: a base URL and the name of the query parameter.
type Engine struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	Param   string `yaml:"param" json:"param"`
}

// Validate checks that the base URL is an absolute http(s) URL and that a parameter is named.
func (e Engine) Validate() error {
	if e.Param == "" {
		return errors.New("engine parameter is empty")
	}
	u, err := url.Parse(e.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing engine url %q: %w", e.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("engine url %q must be http or https", e.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("engine url %q has no host", e.BaseURL)
	}
	return nil
}

// SearchQuery is a keyword together with the domains to exclude from its results.
type SearchQuery struct {
	Keyword    string
	Exclusions []string
}

// NewSearchQuery trims keyword and copies exclusions.
// An empty keyword is rejected whatever the exclusions are.
func NewSearchQuery(keyword string, exclusions []string) (SearchQuery, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return SearchQuery{}, ErrEmptyKeyword
	}
	return SearchQuery{
		Keyword:    keyword,
		Exclusions: append([]string(nil), exclusions...),
	}, nil
}

// String renders the query text, e.g. "golang -site:a.com -site:b.com".
func (q SearchQuery) String() string {
	var b strings.Builder
	b.WriteString(q.Keyword)
	for _, d := range q.Exclusions {
		b.WriteString(" -site:")
		b.WriteString(d)
	}
	return b.String()
}

// URL renders q against the engine.
func (e Engine) URL(q SearchQuery) string {
	base := e.BaseURL
	param := e.Param
	if base == "" {
		base = DefaultEngine.BaseURL
	}
	if param == "" {
		param = DefaultEngine.Param
	}

	sep := "?"
	switch {
	case strings.HasSuffix(base, "?"), strings.HasSuffix(base, "&"):
		sep = ""
	case strings.Contains(base, "?"):
		sep = "&"
	}
	return base + sep + escapeComponent(param) + "=" + escapeComponent(q.String())
}

// Compose builds the search URL for keyword with one -site: token per exclusion, in order.
func (e Engine) Compose(keyword string, exclusions []string) (string, error) {
	q, err := NewSearchQuery(keyword, exclusions)
	if err != nil {
		return "", err
	}
	return e.URL(q), nil
}

// Compose builds a search URL against DefaultEngine.
func Compose(keyword string, exclusions []string) (string, error) {
	return DefaultEngine.Compose(keyword, exclusions)
}

// componentUnescaper turns QueryEscape output into what a browser's encodeURIComponent
// produces: spaces as %20 and the marks !'()* left literal. A literal "+" is already %2B.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
