package pixabay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryKeyString(t *testing.T) {
	k := queryKey{Type: queryTypeSearch, PageSize: 80, Page: 2, Query: "red fox"}
	assert.Equal(t, `search+80+2+photo+"red fox"`, k.String())
	assert.Equal(t, k.String(), queryKey{Query: "red fox", Page: 2, PageSize: 80, Type: queryTypeSearch}.String())
}

func TestQueryKeyDistinct(t *testing.T) {
	a := queryKey{Type: queryTypeSearch, PageSize: 20, Page: 1, Query: "a+20"}
	b := queryKey{Type: queryTypeSearch, PageSize: 20, Page: 1, Query: "a"}
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a.String(), b.String())

	curated := queryKey{Type: queryTypeCurated, PageSize: 20, Page: 1}
	emptySearch := queryKey{Type: queryTypeSearch, PageSize: 20, Page: 1}
	assert.NotEqual(t, curated, emptySearch)
}

func TestQueryKeyParams(t *testing.T) {
	p := queryKey{Type: queryTypeCurated, PageSize: 20, Page: 1}.params("k")
	assert.Equal(t, map[string]string{"key": "k", "per_page": "20", "page": "1", "type": "photo"}, p)

	p = queryKey{Type: queryTypeSearch, PageSize: 20, Page: 1, Query: "cat"}.params("k")
	assert.Equal(t, "cat", p["q"])
}
