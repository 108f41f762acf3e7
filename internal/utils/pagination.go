package utils

// Paginate clamps page/per_page to sane bounds and returns the SQL offset
// together with the effective page, per-page size and page count for total
// rows.
func Paginate(page, perPage int, total int64) (offset, effPage, effPerPage, pages int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 10
	}

	pages = int((total + int64(perPage) - 1) / int64(perPage))
	return (page - 1) * perPage, page, perPage, pages
}
