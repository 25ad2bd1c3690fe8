package pixabay

// PageForOffset returns the 1-based API page holding the item at offset
// when pages hold limit items, i.e. ceil((offset+1)/limit).
func PageForOffset(offset, limit int) int {
	if limit <= 0 || offset < 0 {
		return 1
	}
	return offset/limit + 1
}

// OffsetForPage is the inverse: the offset of the first item of page.
func OffsetForPage(page, limit int) int {
	if page < 1 || limit <= 0 {
		return 0
	}
	return (page - 1) * limit
}
