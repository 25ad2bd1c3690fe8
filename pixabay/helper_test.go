package pixabay

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moddengine/pixabay-assetsource/assetsource"
	"github.com/moddengine/pixabay-assetsource/internal/logger"
)

// fakeAPI serves a Pixabay style search endpoint and counts requests.
type fakeAPI struct {
	srv   *httptest.Server
	calls atomic.Int32
	total int

	mu      sync.Mutex
	queries []url.Values
}

func newFakeAPI(t *testing.T, total int) *fakeAPI {
	t.Helper()
	api := &fakeAPI{total: total}
	api.srv = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.srv.Close)
	return api
}

func (api *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	api.calls.Add(1)
	q := r.URL.Query()
	api.mu.Lock()
	api.queries = append(api.queries, q)
	api.mu.Unlock()

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	hits := []map[string]any{}
	for i := 0; i < perPage && i < 3; i++ {
		id := page*1000 + i
		hits = append(hits, hitJSON(id, q.Get("q")))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"total":     api.total + 100,
		"totalHits": api.total,
		"hits":      hits,
	})
}

func (api *fakeAPI) lastQuery() url.Values {
	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.queries) == 0 {
		return nil
	}
	return api.queries[len(api.queries)-1]
}

func hitJSON(id int, user string) map[string]any {
	if user == "" {
		user = "curator"
	}
	return map[string]any{
		"id":            id,
		"previewURL":    fmt.Sprintf("https://cdn.pixabay.com/photo/2024/01/01/%d_150.jpg", id),
		"webformatURL":  fmt.Sprintf("https://pixabay.com/get/%d_640.jpg", id),
		"largeImageURL": fmt.Sprintf("https://pixabay.com/get/%d_1280.jpg", id),
		"imageWidth":    4000,
		"imageHeight":   3000,
		"imageSize":     123456,
		"user":          user,
		"tags":          "sea, sky",
	}
}

type fakeImports map[string]*assetsource.ImportedAsset

func (f fakeImports) FindImportedAsset(sourceID, remoteID string) (*assetsource.ImportedAsset, error) {
	return f[sourceID+"/"+remoteID], nil
}

func newTestSource(t *testing.T, baseURL string, opts Options) *AssetSource {
	t.Helper()
	if opts.APIKey == "" {
		opts.APIKey = "test-key"
	}
	opts.Logger = logger.Discard()
	opts.ClientOptions = append(opts.ClientOptions, WithBaseURL(baseURL))
	src, err := NewAssetSource("pixabay", opts)
	require.NoError(t, err)
	return src
}
