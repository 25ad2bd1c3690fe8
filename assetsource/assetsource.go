// Package assetsource holds the contracts a media asset source must satisfy
// to be browsed and imported by the CMS.
package assetsource

import (
	"context"
	"errors"
	"io"
	"net/url"
	"time"
)

var (
	// ErrAssetNotFound is matched by every "no such asset" failure of a source.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrConnection is matched by failures talking to the backing service.
	ErrConnection = errors.New("asset source connection failed")
)

type AssetTypeFilter string

const (
	AssetTypeAll      AssetTypeFilter = "All"
	AssetTypeImage    AssetTypeFilter = "Image"
	AssetTypeDocument AssetTypeFilter = "Document"
	AssetTypeVideo    AssetTypeFilter = "Video"
	AssetTypeAudio    AssetTypeFilter = "Audio"
)

type Tag struct {
	Label string
}

// Source is a pluggable provider of browsable media.
type Source interface {
	// Identifier must match ^[a-z][a-z0-9-]{0,62}[a-z]$
	Identifier() string
	Label() string
	Description() string
	IconURI() (string, error)
	ReadOnly() bool
	AssetProxyRepository() Repository
}

// Proxy describes a remote asset that may or may not be imported yet.
type Proxy interface {
	AssetSource() Source
	Identifier() string
	Label() string
	Filename() string
	LastModified() time.Time
	FileSize() int64
	MediaType() string
	WidthInPixels() int
	HeightInPixels() int
	ThumbnailURI() *url.URL
	PreviewURI() *url.URL
	ImportStream(ctx context.Context) (io.ReadCloser, error)
	LocalAssetIdentifier() string
	IsImported() bool
}

type OriginalURIProvider interface {
	OriginalURI() *url.URL
}

type IptcMetadataProvider interface {
	HasIptcProperty(name string) bool
	IptcProperty(name string) string
	IptcProperties() map[string]string
}

type Query interface {
	SetOffset(offset int)
	Offset() int
	SetLimit(limit int)
	Limit() int
	SetSearchTerm(term string)
	SearchTerm() string
	Execute(ctx context.Context) (QueryResult, error)
	Count(ctx context.Context) (int, error)
}

// QueryResult is a restartable cursor over one page of proxies. Count
// reports the size of the whole result set, not of the page.
type QueryResult interface {
	Query() Query
	First() (Proxy, error)
	Current() (Proxy, error)
	Next()
	Key() int
	Valid() bool
	Rewind()
	Exists(offset int) bool
	Get(offset int) (Proxy, error)
	Count() int
}

type Repository interface {
	GetAssetProxy(ctx context.Context, identifier string) (Proxy, error)
	FilterByType(filter AssetTypeFilter)
	FindAll(ctx context.Context) (QueryResult, error)
	FindBySearchTerm(ctx context.Context, term string) (QueryResult, error)
	FindByTag(ctx context.Context, tag Tag) (QueryResult, error)
	FindUntagged(ctx context.Context) (QueryResult, error)
	CountAll() int
}

// ImportedAsset links a remote asset to the local asset created from it.
type ImportedAsset struct {
	AssetSourceIdentifier string
	RemoteAssetIdentifier string
	LocalAssetIdentifier  string
	ImportedAt            time.Time
}

// ImportedAssetFinder is the host's import tracking storage. A nil asset
// and nil error means the remote asset was never imported.
type ImportedAssetFinder interface {
	FindImportedAsset(sourceIdentifier, remoteIdentifier string) (*ImportedAsset, error)
}

// ResourcePublisher turns a package resource path into a public URI.
type ResourcePublisher interface {
	PublicResourceURI(path string) (string, error)
}
