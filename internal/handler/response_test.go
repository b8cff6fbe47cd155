package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	cases := []struct {
		page, limit int
		total       int64
		wantPages   int
	}{
		{1, 20, 0, 0},
		{1, 20, 1, 1},
		{1, 20, 20, 1},
		{1, 20, 21, 2},
		{3, 10, 95, 10},
		{1, 1, 5, 5},
	}
	for _, tc := range cases {
		p := paginate(tc.page, tc.limit, tc.total)
		assert.Equal(t, tc.wantPages, p.Pages, "total=%d limit=%d", tc.total, tc.limit)
		assert.Equal(t, tc.page, p.Page)
		assert.Equal(t, tc.total, p.Total)
	}
}

func TestPathID(t *testing.T) {
	ctxFor := func(raw string) (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(raw)
		return c, rec
	}

	t.Run("valid", func(t *testing.T) {
		c, _ := ctxFor("42")
		id, ok := pathID(c, "id")
		require.True(t, ok)
		assert.Equal(t, uint64(42), id)
	})

	t.Run("zero rejected", func(t *testing.T) {
		c, rec := ctxFor("0")
		_, ok := pathID(c, "id")
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		c, rec := ctxFor("abc")
		_, ok := pathID(c, "id")
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
