package pixabay

import (
	"fmt"

	"github.com/moddengine/pixabay-assetsource/assetsource"
)

// AssetProxyQueryResult is a cursor over one QueryResult page. Proxies are
// built on access, one record at a time.
type AssetProxyQueryResult struct {
	query  AssetProxyQuery
	result *QueryResult
	source *AssetSource
	pos    int
}

var _ assetsource.QueryResult = (*AssetProxyQueryResult)(nil)

func NewAssetProxyQueryResult(query *AssetProxyQuery, result *QueryResult, source *AssetSource) *AssetProxyQueryResult {
	return &AssetProxyQueryResult{query: *query, result: result, source: source}
}

// Query returns a copy of the query that produced this result.
func (r *AssetProxyQueryResult) Query() assetsource.Query {
	q := r.query
	return &q
}

func (r *AssetProxyQueryResult) First() (assetsource.Proxy, error) {
	return r.Get(0)
}

// Current returns nil without error once the cursor is past the end.
func (r *AssetProxyQueryResult) Current() (assetsource.Proxy, error) {
	if !r.Valid() {
		return nil, nil
	}
	return r.Get(r.pos)
}

func (r *AssetProxyQueryResult) Next() { r.pos++ }

func (r *AssetProxyQueryResult) Key() int { return r.pos }

func (r *AssetProxyQueryResult) Valid() bool { return r.Exists(r.pos) }

func (r *AssetProxyQueryResult) Rewind() { r.pos = 0 }

func (r *AssetProxyQueryResult) Exists(offset int) bool {
	_, ok := r.result.At(offset)
	return ok
}

func (r *AssetProxyQueryResult) Get(offset int) (assetsource.Proxy, error) {
	rec, ok := r.result.At(offset)
	if !ok {
		return nil, fmt.Errorf("%w: no asset at offset %d", ErrNotFound, offset)
	}
	p, err := NewAssetProxy(rec, r.source)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ToArray returns the raw records of the page, not proxies.
func (r *AssetProxyQueryResult) ToArray() []ImageRecord {
	return r.result.Records()
}

// Len is the number of records on this page.
func (r *AssetProxyQueryResult) Len() int { return r.result.Len() }

// Count is the total hit count reported by the API, which is usually
// larger than the page.
func (r *AssetProxyQueryResult) Count() int { return r.result.TotalResults() }
