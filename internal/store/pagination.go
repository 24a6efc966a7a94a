package store

import "github.com/taskhive-dev/taskhive/internal/types"

// normalizePage clamps page and limit to sane values. Limits default at the
// endpoint, not here, so callers always pass one explicitly.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	return page, limit
}

// paginate computes the listing metadata for a page of a result set.
// A page beyond the last one is valid and simply carries no rows.
func paginate(total int64, page, limit int) types.Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))

	p := types.Pagination{
		Total: total,
		Page:  page,
		Pages: pages,
	}

	if int64(page*limit) < total {
		p.Next = &types.PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &types.PageRef{Page: page - 1, Limit: limit}
	}

	return p
}
