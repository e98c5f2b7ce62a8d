package sitefilter

import (
	"context"
	"fmt"
	"strings"

	"github.com/tfkr-ae/sitefilter/core"
)

// SearchURL composes the search URL for keyword against the current exclusion list.
// The keyword is checked before the store is read.
func (filter *Filter) SearchURL(ctx context.Context, keyword string) (string, error) {
	if strings.TrimSpace(keyword) == "" {
		return "", ErrEmptyKeyword
	}

	list, err := filter.Registry.List(ctx)
	if err != nil {
		filter.logFailure("loading exclusions for search", err, core.LogWithKeyword(keyword))
		return "", err
	}
	return filter.Engine().Compose(keyword, list)
}

// Search composes the search URL for keyword and opens it in a new tab.
// The composed URL is returned even when opening fails.
func (filter *Filter) Search(ctx context.Context, keyword string) (string, error) {
	target, err := filter.SearchURL(ctx, keyword)
	if err != nil {
		return "", err
	}

	if filter.Opener == nil {
		return target, ErrNoOpener
	}
	if err := filter.Opener.Open(ctx, target); err != nil {
		err = fmt.Errorf("opening %s : %w", target, err)
		filter.logFailure("opening search", err, core.LogWithKeyword(keyword))
		return target, err
	}

	filter.record("INFO", fmt.Sprintf("Searched %q", strings.TrimSpace(keyword)),
		core.LogWithKeyword(strings.TrimSpace(keyword)),
		core.LogWithContext(map[string]any{"url": target}),
	)
	return target, nil
}
