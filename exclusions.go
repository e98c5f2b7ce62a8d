package sitefilter

import (
	"context"
	"errors"
	"fmt"

	"github.com/tfkr-ae/sitefilter/core"
	"github.com/tfkr-ae/sitefilter/domain"
)

// Exclusions returns the persisted exclusion list.
func (filter *Filter) Exclusions(ctx context.Context) (domain.ExclusionList, error) {
	list, err := filter.Registry.List(ctx)
	if err != nil {
		filter.logFailure("listing exclusions", err)
		return nil, err
	}
	return list, nil
}

// Exclude adds d to the exclusion list.
func (filter *Filter) Exclude(ctx context.Context, d string) (domain.ExclusionList, error) {
	list, err := filter.Registry.Add(ctx, d)
	if err != nil {
		if !errors.Is(err, ErrDuplicateEntry) && !errors.Is(err, ErrEmptyInput) {
			filter.logFailure(fmt.Sprintf("excluding %q", d), err, core.LogWithDomain(d))
		}
		return nil, err
	}
	filter.record("INFO", fmt.Sprintf("Excluded %s", list[len(list)-1]),
		core.LogWithDomain(list[len(list)-1]),
		core.LogWithContext(map[string]any{"count": len(list)}),
	)
	return list, nil
}

// Include removes d from the exclusion list.
func (filter *Filter) Include(ctx context.Context, d string) (domain.ExclusionList, error) {
	list, err := filter.Registry.Remove(ctx, d)
	if err != nil {
		filter.logFailure(fmt.Sprintf("including %q", d), err, core.LogWithDomain(d))
		return nil, err
	}
	filter.record("INFO", fmt.Sprintf("Included %s", d),
		core.LogWithDomain(d),
		core.LogWithContext(map[string]any{"count": len(list)}),
	)
	return list, nil
}

// CurrentDomain resolves the active browser tab and normalizes its URL.
func (filter *Filter) CurrentDomain(ctx context.Context) (domain.Domain, error) {
	if filter.Resolver == nil {
		return "", fmt.Errorf("%w: no tab resolver configured", ErrNoActiveTab)
	}

	raw, ok, err := filter.Resolver.CurrentURL(ctx)
	if err != nil {
		return "", fmt.Errorf("resolving current tab : %w", err)
	}
	if !ok {
		return "", ErrNoActiveTab
	}
	return Normalize(raw)
}
