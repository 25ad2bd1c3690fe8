package pixabay

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moddengine/pixabay-assetsource/assetsource"
)

func testRecord() ImageRecord {
	return ImageRecord{
		ID:            "195893",
		PreviewURL:    "https://cdn.pixabay.com/photo/2013/10/15/09/12/flower-195893_150.jpg",
		WebformatURL:  "https://pixabay.com/get/35bbf209e13e39d2_640.jpg",
		LargeImageURL: "https://pixabay.com/get/ed6a99fd0a76647_1280.jpg",
		ImageWidth:    4000,
		ImageHeight:   2250,
		ImageSize:     4731420,
		User:          "Josch13",
	}
}

func TestAssetProxyMapping(t *testing.T) {
	src := newTestSource(t, "http://127.0.0.1:0", Options{})
	p, err := NewAssetProxy(testRecord(), src)
	require.NoError(t, err)

	assert.Equal(t, "195893", p.Identifier())
	assert.Equal(t, "flower-195893_150.jpg", p.Label())
	assert.Equal(t, p.Label(), p.Filename())
	assert.Equal(t, int64(4731420), p.FileSize())
	assert.Equal(t, MediaType, p.MediaType())
	assert.Equal(t, 4000, p.WidthInPixels())
	assert.Equal(t, 2250, p.HeightInPixels())
	assert.Equal(t, "https://pixabay.com/get/35bbf209e13e39d2_640.jpg", p.ThumbnailURI().String())
	assert.Equal(t, p.ThumbnailURI(), p.PreviewURI())
	assert.Same(t, src, p.AssetSource())
}

func TestAssetProxyOriginalURI(t *testing.T) {
	src := newTestSource(t, "http://127.0.0.1:0", Options{})
	rec := testRecord()

	p, err := NewAssetProxy(rec, src)
	require.NoError(t, err)
	assert.Equal(t, rec.LargeImageURL, p.OriginalURI().String(), "falls back to the large image")

	rec.FullHDURL = "https://pixabay.com/get/ed6a99fd0a76647_1920.jpg"
	p, err = NewAssetProxy(rec, src)
	require.NoError(t, err)
	assert.Equal(t, rec.FullHDURL, p.OriginalURI().String())
}

func TestAssetProxyLastModifiedIsNow(t *testing.T) {
	src := newTestSource(t, "http://127.0.0.1:0", Options{})
	p, err := NewAssetProxy(testRecord(), src)
	require.NoError(t, err)

	before := time.Now()
	got := p.LastModified()
	assert.False(t, got.Before(before))
	assert.WithinDuration(t, time.Now(), got, time.Second)
}

func TestAssetProxyIptc(t *testing.T) {
	src := newTestSource(t, "http://127.0.0.1:0", Options{})
	p, err := NewAssetProxy(testRecord(), src)
	require.NoError(t, err)

	assert.True(t, p.HasIptcProperty(IptcTitle))
	assert.Equal(t, "flower-195893_150.jpg", p.IptcProperty(IptcTitle))
	assert.Equal(t, "Pixabay.com / Josch13", p.IptcProperty(IptcCopyrightNotice))
	assert.False(t, p.HasIptcProperty("Keywords"))
	assert.Equal(t, "", p.IptcProperty("Keywords"))
	assert.Len(t, p.IptcProperties(), 2)
}

func TestAssetProxyImported(t *testing.T) {
	imports := fakeImports{
		"pixabay/195893": {
			AssetSourceIdentifier: "pixabay",
			RemoteAssetIdentifier: "195893",
			LocalAssetIdentifier:  "2f4b1a9e-local",
		},
	}
	src := newTestSource(t, "http://127.0.0.1:0", Options{ImportedAssets: imports})

	p, err := NewAssetProxy(testRecord(), src)
	require.NoError(t, err)
	assert.True(t, p.IsImported())
	assert.Equal(t, "2f4b1a9e-local", p.LocalAssetIdentifier())

	other := testRecord()
	other.ID = "1"
	p, err = NewAssetProxy(other, src)
	require.NoError(t, err)
	assert.False(t, p.IsImported())
	assert.Equal(t, "", p.LocalAssetIdentifier())
}

type failingImports struct{}

func (failingImports) FindImportedAsset(string, string) (*assetsource.ImportedAsset, error) {
	return nil, io.ErrUnexpectedEOF
}

func TestAssetProxyImportLookupFails(t *testing.T) {
	src := newTestSource(t, "http://127.0.0.1:0", Options{ImportedAssets: failingImports{}})
	_, err := NewAssetProxy(testRecord(), src)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestAssetProxyImportStream(t *testing.T) {
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		io.WriteString(w, "original")
	}))
	defer srv.Close()

	src := newTestSource(t, srv.URL, Options{})
	rec := testRecord()
	rec.LargeImageURL = srv.URL + "/large.jpg"
	rec.FullHDURL = srv.URL + "/fullhd.jpg"
	p, err := NewAssetProxy(rec, src)
	require.NoError(t, err)

	stream, err := p.ImportStream(context.Background())
	require.NoError(t, err)
	defer stream.Close()
	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
	assert.Equal(t, "/fullhd.jpg", requested)
}
