package domain

import "context"

// TabResolver reports the URL of the browser tab the user is currently looking at.
// It is only used to pre-fill a domain for convenience.
type TabResolver interface {
	// CurrentURL returns the active tab URL. The boolean is false when no tab could be found.
	CurrentURL(ctx context.Context) (string, bool, error)
}

// Opener opens a URL in a new browser tab.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Browser is a collaborator that can both resolve the active tab and open new ones.
type Browser interface {
	TabResolver
	Opener
}
