package pixabay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageForOffset(t *testing.T) {
	assert.Equal(t, 1, PageForOffset(0, 80), "First Page = 1")
	assert.Equal(t, 1, PageForOffset(79, 80))
	assert.Equal(t, 2, PageForOffset(80, 80), "Second Page = 2")
	assert.Equal(t, 2, PageForOffset(159, 80))
	assert.Equal(t, 5, PageForOffset(100, 25))
	//   0    ------     80    ---------     160
	//   0 - 25 - 50 - 75 - 100
	assert.Equal(t, 1, PageForOffset(75, 80))
	assert.Equal(t, 4, PageForOffset(75, 25))
}

func TestPageForOffsetBounds(t *testing.T) {
	assert.Equal(t, 1, PageForOffset(10, 0))
	assert.Equal(t, 1, PageForOffset(-5, 20))
}

func TestOffsetForPage(t *testing.T) {
	assert.Equal(t, 0, OffsetForPage(1, 80))
	assert.Equal(t, 80, OffsetForPage(2, 80))
	assert.Equal(t, 0, OffsetForPage(0, 80))
	for page := 1; page < 10; page++ {
		assert.Equal(t, page, PageForOffset(OffsetForPage(page, 30), 30))
	}
}
