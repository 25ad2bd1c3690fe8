package pixabay

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/moddengine/pixabay-assetsource/assetsource"
)

const (
	// MediaType is assumed for every image; the API does not report one.
	MediaType = "image/jpeg"

	IptcTitle           = "Title"
	IptcCopyrightNotice = "CopyrightNotice"
	CopyrightPrefix     = "Pixabay.com / "
)

// lastModified stands in for a modification time the API does not have.
// Every call returns the current time.
var lastModified = time.Now

// AssetProxy exposes one ImageRecord to the CMS.
type AssetProxy struct {
	record   ImageRecord
	source   *AssetSource
	imported *assetsource.ImportedAsset
	iptc     map[string]string
}

var (
	_ assetsource.Proxy                = (*AssetProxy)(nil)
	_ assetsource.OriginalURIProvider  = (*AssetProxy)(nil)
	_ assetsource.IptcMetadataProvider = (*AssetProxy)(nil)
)

// NewAssetProxy wraps record and resolves whether it was already imported.
func NewAssetProxy(record ImageRecord, source *AssetSource) (*AssetProxy, error) {
	p := &AssetProxy{record: record, source: source}
	if source.importedAssets != nil {
		imported, err := source.importedAssets.FindImportedAsset(source.Identifier(), record.ID)
		if err != nil {
			return nil, fmt.Errorf("look up imported asset %s: %w", record.ID, err)
		}
		p.imported = imported
	}
	return p, nil
}

func (p *AssetProxy) AssetSource() assetsource.Source { return p.source }

func (p *AssetProxy) Record() ImageRecord { return p.record }

func (p *AssetProxy) Identifier() string { return p.record.ID }

// Label is the file name of the preview image.
func (p *AssetProxy) Label() string {
	u, err := url.Parse(p.record.PreviewURL)
	if err != nil || u.Path == "" {
		return ""
	}
	return path.Base(u.Path)
}

func (p *AssetProxy) Filename() string { return p.Label() }

func (p *AssetProxy) LastModified() time.Time { return lastModified() }

func (p *AssetProxy) FileSize() int64 { return p.record.ImageSize }

func (p *AssetProxy) MediaType() string { return MediaType }

func (p *AssetProxy) WidthInPixels() int { return p.record.ImageWidth }

func (p *AssetProxy) HeightInPixels() int { return p.record.ImageHeight }

func (p *AssetProxy) ThumbnailURI() *url.URL { return parseURI(p.record.WebformatURL) }

func (p *AssetProxy) PreviewURI() *url.URL { return parseURI(p.record.WebformatURL) }

// OriginalURI prefers the full HD variant over the large image.
func (p *AssetProxy) OriginalURI() *url.URL { return parseURI(p.originalURL()) }

func (p *AssetProxy) ImportStream(ctx context.Context) (io.ReadCloser, error) {
	return p.source.Client().FileStream(ctx, p.originalURL())
}

func (p *AssetProxy) LocalAssetIdentifier() string {
	if p.imported == nil {
		return ""
	}
	return p.imported.LocalAssetIdentifier
}

func (p *AssetProxy) IsImported() bool { return p.imported != nil }

func (p *AssetProxy) HasIptcProperty(name string) bool {
	_, ok := p.IptcProperties()[name]
	return ok
}

func (p *AssetProxy) IptcProperty(name string) string {
	return p.IptcProperties()[name]
}

func (p *AssetProxy) IptcProperties() map[string]string {
	if p.iptc == nil {
		p.iptc = map[string]string{
			IptcTitle:           p.Label(),
			IptcCopyrightNotice: CopyrightPrefix + p.record.User,
		}
	}
	return p.iptc
}

func (p *AssetProxy) originalURL() string {
	if p.record.FullHDURL != "" {
		return p.record.FullHDURL
	}
	return p.record.LargeImageURL
}

func parseURI(s string) *url.URL {
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil
	}
	return u
}
