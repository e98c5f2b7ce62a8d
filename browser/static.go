package browser

import (
	"context"
	"errors"

	"github.com/tfkr-ae/sitefilter/domain"
)

var _ domain.TabResolver = Static{}

// Static is a resolver that always reports the same URL. An empty URL means no tab.
type Static struct {
	URL string
}

func (s Static) CurrentURL(ctx context.Context) (string, bool, error) {
	return s.URL, s.URL != "", nil
}

var _ domain.Opener = Fallback{}

// Fallback tries each opener in turn until one succeeds.
type Fallback []domain.Opener

func (f Fallback) Open(ctx context.Context, target string) error {
	var errs []error
	for _, opener := range f {
		if opener == nil {
			continue
		}
		err := opener.Open(ctx, target)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return errors.New("no opener available")
	}
	return errors.Join(errs...)
}
