package webshare

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/kasuboski/seriez/pkg/catalog"
	mhttp "github.com/kasuboski/seriez/pkg/http"
	"github.com/kasuboski/seriez/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const okResponse = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <status>OK</status>
  <total>2</total>
  <file>
    <ident>abc123</ident>
    <name>Friends.S01E01.mkv</name>
    <size>734003200</size>
    <type>mkv</type>
  </file>
  <file>
    <ident>def456</ident>
    <name>Přátelé S01E02.avi</name>
  </file>
</response>`

func testCtx() context.Context {
	return logger.WithCtx(context.Background(), zap.NewNop().Sugar())
}

func TestNew(t *testing.T) {
	_, err := New("webshare.cz")
	assert.Error(t, err)

	_, err = New("://bad")
	assert.Error(t, err)

	c, err := New("https://webshare.cz")
	require.NoError(t, err)
	assert.Equal(t, "webshare.cz", c.baseURL.Host)
}

func TestClient_Search(t *testing.T) {
	params := SearchParams{
		Query:        "Friends s01",
		Category:     CategoryVideo,
		Sort:         SortRecent,
		Limit:        DefaultLimit,
		Token:        "token",
		MaybeRemoved: true,
	}

	t.Run("parses files", func(t *testing.T) {
		var form url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/search/", r.URL.Path)
			require.NoError(t, r.ParseForm())
			form = r.PostForm
			w.Write([]byte(okResponse))
		}))
		defer srv.Close()

		c, err := New(srv.URL)
		require.NoError(t, err)

		entries, err := c.Search(testCtx(), params)
		require.NoError(t, err)
		assert.Equal(t, []catalog.RawEntry{
			{"ident": "abc123", "name": "Friends.S01E01.mkv", "size": "734003200", "type": "mkv"},
			{"ident": "def456", "name": "Přátelé S01E02.avi"},
		}, entries)

		assert.Equal(t, "Friends s01", form.Get("what"))
		assert.Equal(t, "video", form.Get("category"))
		assert.Equal(t, "recent", form.Get("sort"))
		assert.Equal(t, "100", form.Get("limit"))
		assert.Equal(t, "0", form.Get("offset"))
		assert.Equal(t, "token", form.Get("wst"))
		assert.Equal(t, "true", form.Get("maybe_removed"))
	})

	t.Run("non ok status yields no entries", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<response><status>FATAL</status><code>SEARCH_FATAL_1</code><message>Bad token</message></response>`))
		}))
		defer srv.Close()

		c, err := New(srv.URL)
		require.NoError(t, err)

		entries, err := c.Search(testCtx(), params)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<response><status>OK</status><file><ident>`))
		}))
		defer srv.Close()

		c, err := New(srv.URL)
		require.NoError(t, err)

		_, err = c.Search(testCtx(), params)
		assert.Error(t, err)
	})

	t.Run("unexpected http status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c, err := New(srv.URL)
		require.NoError(t, err)

		_, err = c.Search(testCtx(), params)
		assert.ErrorContains(t, err, "unexpected status")
	})

	t.Run("retries when rate limited", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "Friends s01", r.PostForm.Get("what"))
			if calls == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(okResponse))
		}))
		defer srv.Close()

		c, err := New(srv.URL, WithHTTPClient(mhttp.NewRateLimitedClient(mhttp.WithBaseBackoff(time.Millisecond))))
		require.NoError(t, err)

		entries, err := c.Search(testCtx(), params)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, 2, calls)
	})
}
