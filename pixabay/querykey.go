package pixabay

import (
	"strconv"
	"strings"
)

type queryType string

const (
	queryTypeCurated queryType = "curated"
	queryTypeSearch  queryType = "search"

	imageType = "photo"
)

// queryKey identifies one remote request. It is comparable and used
// directly as the query cache key.
type queryKey struct {
	Type     queryType
	PageSize int
	Page     int
	Query    string
}

// String renders the key in fixed field order.
func (k queryKey) String() string {
	return strings.Join([]string{
		string(k.Type),
		strconv.Itoa(k.PageSize),
		strconv.Itoa(k.Page),
		imageType,
		strconv.Quote(k.Query),
	}, "+")
}

func (k queryKey) params(apiKey string) map[string]string {
	p := map[string]string{
		"key":      apiKey,
		"per_page": strconv.Itoa(k.PageSize),
		"page":     strconv.Itoa(k.Page),
		"type":     imageType,
	}
	if k.Query != "" {
		p["q"] = k.Query
	}
	return p
}
