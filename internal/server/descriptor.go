package server

import (
	"net/url"
	"time"

	"github.com/moddengine/pixabay-assetsource/assetsource"
)

type assetDescriptor struct {
	ID           string            `json:"id"`
	Label        string            `json:"label"`
	Filename     string            `json:"filename"`
	MediaType    string            `json:"mediaType"`
	FileSize     int64             `json:"fileSize"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	LastModified time.Time         `json:"lastModified"`
	ThumbnailURI string            `json:"thumbnailUri,omitempty"`
	PreviewURI   string            `json:"previewUri,omitempty"`
	OriginalURI  string            `json:"originalUri,omitempty"`
	Imported     bool              `json:"imported"`
	LocalAssetID string            `json:"localAssetId,omitempty"`
	Iptc         map[string]string `json:"iptc,omitempty"`
}

func describe(p assetsource.Proxy) assetDescriptor {
	d := assetDescriptor{
		ID:           p.Identifier(),
		Label:        p.Label(),
		Filename:     p.Filename(),
		MediaType:    p.MediaType(),
		FileSize:     p.FileSize(),
		Width:        p.WidthInPixels(),
		Height:       p.HeightInPixels(),
		LastModified: p.LastModified(),
		ThumbnailURI: uriString(p.ThumbnailURI()),
		PreviewURI:   uriString(p.PreviewURI()),
		Imported:     p.IsImported(),
		LocalAssetID: p.LocalAssetIdentifier(),
	}
	if o, ok := p.(assetsource.OriginalURIProvider); ok {
		d.OriginalURI = uriString(o.OriginalURI())
	}
	if m, ok := p.(assetsource.IptcMetadataProvider); ok {
		d.Iptc = m.IptcProperties()
	}
	return d
}

func uriString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}
