package pixabay

// QueryResult is one page of records plus the total hit count the API
// reported for the query. It is never modified after construction.
type QueryResult struct {
	records []ImageRecord
	total   int
}

func NewQueryResult(records []ImageRecord, total int) *QueryResult {
	r := &QueryResult{total: total}
	r.records = append(make([]ImageRecord, 0, len(records)), records...)
	return r
}

// Records returns a copy of the page.
func (r *QueryResult) Records() []ImageRecord {
	return append([]ImageRecord(nil), r.records...)
}

func (r *QueryResult) Len() int { return len(r.records) }

func (r *QueryResult) At(i int) (ImageRecord, bool) {
	if i < 0 || i >= len(r.records) {
		return ImageRecord{}, false
	}
	return r.records[i], true
}

func (r *QueryResult) TotalResults() int { return r.total }
