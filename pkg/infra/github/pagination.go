package github

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
)

// collectPages calls fetch until the response has no rel="next" link and
// concatenates the pages in order. go-github parses the Link header into
// Response.NextPage; a next page that does not advance also ends the walk.
func collectPages[T any](ctx context.Context, fetch func(opts *github.ListOptions) ([]T, *github.Response, error)) ([]T, error) {
	opts := &github.ListOptions{PerPage: perPage}
	var all []T

	for {
		items, resp, err := fetch(opts)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if resp == nil || resp.NextPage == 0 {
			return all, nil
		}
		if resp.NextPage <= opts.Page {
			ctxlog.From(ctx).Warn("Pagination did not advance, stop fetching",
				"page", opts.Page,
				"next_page", resp.NextPage,
			)
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}
