package pixabay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apibillme/cache"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/moddengine/pixabay-assetsource/internal/logger"
)

const (
	APIURL          = "https://pixabay.com/api/"
	DefaultPageSize = 20

	DefaultResultCapacity = 256
)

// Client talks to the Pixabay search API. Query results are memoized per
// parameter set, and every record a query returns is written through to
// the record store for later lookup by id, memo hits included.
type Client struct {
	http    *resty.Client
	apiKey  string
	baseURL string
	records RecordStore
	log     *logrus.Entry

	resultCap int
	resultTTL time.Duration
	results   cache.Cache
}

type ClientOption func(*Client)

// WithBaseURL points the client at another API endpoint.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = resty.NewWithClient(hc) }
}

// WithResultCache bounds the query memo. Results expire ttl after they
// were fetched; reads do not extend them.
func WithResultCache(capacity int, ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.resultCap = capacity
		c.resultTTL = ttl
	}
}

func WithLogger(log logrus.FieldLogger) ClientOption {
	return func(c *Client) { c.log = logger.WithComponent(log, "pixabay") }
}

// NewClient creates a client. A nil records store gets an in-memory one.
func NewClient(apiKey string, records RecordStore, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: APIURL,
		records: records,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = resty.New()
	}
	if c.log == nil {
		c.log = logger.WithComponent(nil, "pixabay")
	}
	if c.records == nil {
		c.records = NewMemoryRecordStore(DefaultRecordCapacity, DefaultRecordTTL)
	}
	if c.resultCap <= 0 {
		c.resultCap = DefaultResultCapacity
	}
	if c.resultTTL <= 0 {
		c.resultTTL = DefaultRecordTTL
	}
	c.results = cache.New(c.resultCap, cache.WithTTL(c.resultTTL), cache.WithoutReset())
	c.http.SetLogger(c.log)
	return c
}

// Curated fetches the default feed. Zero page size or page fall back to
// DefaultPageSize and 1.
func (c *Client) Curated(ctx context.Context, pageSize, page int) (*QueryResult, error) {
	return c.executeQuery(ctx, queryTypeCurated, pageSize, page, "")
}

func (c *Client) Search(ctx context.Context, term string, pageSize, page int) (*QueryResult, error) {
	return c.executeQuery(ctx, queryTypeSearch, pageSize, page, term)
}

// FindByIdentifier returns a record previously seen in a query result.
// There is no network fallback.
func (c *Client) FindByIdentifier(id string) (ImageRecord, error) {
	rec, ok, err := c.records.Get(id)
	if err != nil {
		return ImageRecord{}, fmt.Errorf("read record %s: %w", id, err)
	}
	if !ok {
		return ImageRecord{}, fmt.Errorf("%w: file with id %s was not found in the cache", ErrNotFound, id)
	}
	return rec, nil
}

// FileStream opens the media at fileURL. The caller closes the stream.
func (c *Client) FileStream(ctx context.Context, fileURL string) (io.ReadCloser, error) {
	u, err := url.Parse(fileURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: unable to load an image from %q: invalid url", ErrTransfer, fileURL)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(u.String())
	if err != nil {
		c.log.WithError(err).Warnf("Failed to open %s", fileURL)
		return nil, fmt.Errorf("%w: unable to load an image from %s: %w", ErrTransfer, fileURL, err)
	}
	if !resp.IsSuccess() {
		if body := resp.RawBody(); body != nil {
			body.Close()
		}
		c.log.WithField(logger.FieldStatus, resp.StatusCode()).Warnf("Failed to open %s", fileURL)
		return nil, fmt.Errorf("%w: unable to load an image from %s: status %d", ErrTransfer, fileURL, resp.StatusCode())
	}
	return resp.RawBody(), nil
}

func (c *Client) executeQuery(ctx context.Context, typ queryType, pageSize, page int, query string) (*QueryResult, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	key := queryKey{Type: typ, PageSize: pageSize, Page: page, Query: query}

	if v, ok := c.results.Get(key); ok {
		c.log.Debugf("HIT %s", key)
		res := v.(*QueryResult)
		// the record store may have evicted or expired them since
		if err := c.storeRecords(res.records); err != nil {
			return nil, err
		}
		return res, nil
	}

	if strings.TrimSpace(c.apiKey) == "" {
		return nil, fmt.Errorf("%w: no API key for pixabay was defined, get one at https://pixabay.com/api/docs/", ErrConfiguration)
	}

	c.log.Debugf("MISS %s", key)
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(key.params(c.apiKey)).
		Get(c.baseURL)
	if err != nil {
		c.log.WithError(err).Warn("Failed to fetch")
		return nil, fmt.Errorf("%w: %w", ErrRemoteAPI, err)
	}
	if !resp.IsSuccess() {
		c.log.WithField(logger.FieldStatus, resp.StatusCode()).Warnf("Failed to fetch: %s", strings.TrimSpace(string(resp.Body())))
		return nil, fmt.Errorf("%w: status %d", ErrRemoteAPI, resp.StatusCode())
	}

	var data searchResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		c.log.WithError(err).Warn("Failed to decode response")
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	res, err := c.processResult(data)
	if err != nil {
		return nil, err
	}

	c.results.Set(key, res)
	return res, nil
}

func (c *Client) processResult(data searchResponse) (*QueryResult, error) {
	records := make([]ImageRecord, 0, len(data.Hits))
	for _, hit := range data.Hits {
		records = append(records, hit.record())
	}
	if err := c.storeRecords(records); err != nil {
		return nil, err
	}
	c.log.WithField(logger.FieldCount, len(records)).Debugf("%d total hits", data.TotalHits)
	return NewQueryResult(records, data.TotalHits), nil
}

// storeRecords writes records through to the record store. Hits without
// an id cannot be looked up and are skipped.
func (c *Client) storeRecords(records []ImageRecord) error {
	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		if err := c.records.Set(rec.ID, rec); err != nil {
			c.log.WithError(err).Errorf("Failed to cache record %s", rec.ID)
			return fmt.Errorf("cache record %s: %w", rec.ID, err)
		}
	}
	return nil
}
