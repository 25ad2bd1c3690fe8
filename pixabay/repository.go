package pixabay

import (
	"context"

	"github.com/moddengine/pixabay-assetsource/assetsource"
)

// DefaultCountAll approximates the catalog size; the API has no figure.
const DefaultCountAll = 40000

// AssetProxyRepository is the read-only lookup surface of the source.
// Pixabay has no tags, so the tag lookups return everything.
type AssetProxyRepository struct {
	source *AssetSource
}

var _ assetsource.Repository = (*AssetProxyRepository)(nil)

func NewAssetProxyRepository(source *AssetSource) *AssetProxyRepository {
	return &AssetProxyRepository{source: source}
}

func (r *AssetProxyRepository) GetAssetProxy(_ context.Context, identifier string) (assetsource.Proxy, error) {
	rec, err := r.source.Client().FindByIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	p, err := NewAssetProxy(rec, r.source)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FilterByType is accepted and ignored; the source only serves images.
func (r *AssetProxyRepository) FilterByType(assetsource.AssetTypeFilter) {}

func (r *AssetProxyRepository) FindAll(ctx context.Context) (assetsource.QueryResult, error) {
	return NewAssetProxyQuery(r.source).Execute(ctx)
}

func (r *AssetProxyRepository) FindBySearchTerm(ctx context.Context, term string) (assetsource.QueryResult, error) {
	q := NewAssetProxyQuery(r.source)
	q.SetSearchTerm(term)
	return q.Execute(ctx)
}

func (r *AssetProxyRepository) FindByTag(ctx context.Context, _ assetsource.Tag) (assetsource.QueryResult, error) {
	return r.FindAll(ctx)
}

func (r *AssetProxyRepository) FindUntagged(ctx context.Context) (assetsource.QueryResult, error) {
	return r.FindAll(ctx)
}

func (r *AssetProxyRepository) CountAll() int { return r.source.countAll }
