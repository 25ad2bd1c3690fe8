package pixabay

import (
	"context"

	"github.com/moddengine/pixabay-assetsource/assetsource"
)

const DefaultQueryLimit = 80

// AssetProxyQuery maps an offset/limit/search term query onto one API
// page. An empty search term falls back to the source's default term, and
// an empty effective term queries the curated feed.
type AssetProxyQuery struct {
	source     *AssetSource
	offset     int
	limit      int
	searchTerm string
}

var _ assetsource.Query = (*AssetProxyQuery)(nil)

func NewAssetProxyQuery(source *AssetSource) *AssetProxyQuery {
	return &AssetProxyQuery{source: source, limit: DefaultQueryLimit}
}

func (q *AssetProxyQuery) SetOffset(offset int) { q.offset = offset }

func (q *AssetProxyQuery) Offset() int { return q.offset }

func (q *AssetProxyQuery) SetLimit(limit int) { q.limit = limit }

func (q *AssetProxyQuery) Limit() int { return q.limit }

func (q *AssetProxyQuery) SetSearchTerm(term string) { q.searchTerm = term }

func (q *AssetProxyQuery) SearchTerm() string { return q.searchTerm }

func (q *AssetProxyQuery) Execute(ctx context.Context) (assetsource.QueryResult, error) {
	res, err := q.execute(ctx)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Count executes the query again and returns the total hit count. The
// client's query memo makes the repeat free when nothing changed.
func (q *AssetProxyQuery) Count(ctx context.Context) (int, error) {
	res, err := q.execute(ctx)
	if err != nil {
		return 0, err
	}
	return res.Count(), nil
}

func (q *AssetProxyQuery) execute(ctx context.Context) (*AssetProxyQueryResult, error) {
	limit := q.limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	page := PageForOffset(q.offset, limit)

	term := q.searchTerm
	if term == "" {
		term = q.source.DefaultSearchTerm()
	}

	var (
		res *QueryResult
		err error
	)
	if term == "" {
		res, err = q.source.Client().Curated(ctx, limit, page)
	} else {
		res, err = q.source.Client().Search(ctx, term, limit, page)
	}
	if err != nil {
		return nil, err
	}
	return NewAssetProxyQueryResult(q, res, q.source), nil
}
