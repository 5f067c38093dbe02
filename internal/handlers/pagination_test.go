// ejournal/internal/handlers/pagination_test.go

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func TestPageParamsDefaults(t *testing.T) {
	page, size := pageParams(testContext(t, ""))
	if page != 1 || size != defaultPageSize {
		t.Fatalf("pageParams() = (%d, %d), ожидали (1, %d)", page, size, defaultPageSize)
	}
}

func TestPageParamsClampsOversizedPage(t *testing.T) {
	_, size := pageParams(testContext(t, "pageSize=100000"))
	if size != maxPageSize {
		t.Fatalf("pageSize = %d, ожидали %d", size, maxPageSize)
	}
}

func TestPageParamsIgnoresNonsense(t *testing.T) {
	page, size := pageParams(testContext(t, "page=-3&pageSize=abc"))
	if page != 1 || size != defaultPageSize {
		t.Fatalf("pageParams() = (%d, %d)", page, size)
	}
}

func TestPaginatedEnvelope(t *testing.T) {
	c := testContext(t, "page=2&pageSize=10")
	resp := paginated(c, []int{1, 2, 3}, 25)
	if resp.CurrentPage != 2 || resp.PageSize != 10 {
		t.Fatalf("envelope: %+v", resp)
	}
	if resp.TotalRows != 25 || resp.TotalPages != 3 {
		t.Fatalf("totalRows=%d totalPages=%d, ожидали 25 и 3", resp.TotalRows, resp.TotalPages)
	}
}

func TestPaginatedEmptyResult(t *testing.T) {
	resp := paginated(testContext(t, ""), nil, 0)
	if resp.TotalPages != 0 || resp.TotalRows != 0 {
		t.Fatalf("envelope: %+v", resp)
	}
}
