package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePageParams(t *testing.T) {
	params := ParsePageParams(contextWithQuery("page=3&page_size=25"))
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 25, params.PageSize)
	assert.Equal(t, 50, params.GetOffset())
	assert.Equal(t, 25, params.GetLimit())
}

func TestParsePageParamsDefaultsAndClamping(t *testing.T) {
	params := ParsePageParams(contextWithQuery(""))
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)

	params = ParsePageParams(contextWithQuery("page=-1&page_size=junk"))
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)

	params = ParsePageParams(contextWithQuery("page_size=5000"))
	assert.Equal(t, MaxPageSize, params.PageSize)
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(2, 10, 35)
	assert.Equal(t, 4, info.TotalPages)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrev)

	last := NewPageInfo(4, 10, 35)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	empty := NewPageInfo(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
