package docs_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jcdickinson/rsdoc/internal/docs"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the body and sends a user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Write([]byte("<html>ok</html>"))
		}))
		defer srv.Close()

		f := docs.NewHTTPFetcher(docs.WithUserAgent("rsdoc-test/1.0"))
		body, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", body)
		assert.Equal(t, "rsdoc-test/1.0", gotUA)
	})

	t.Run("404 is a status error, not a transport error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		f := docs.NewHTTPFetcher()
		_, err := f.Fetch(context.Background(), srv.URL+"/serde/latest/serde/struct.Nope.html")

		require.Error(t, err)
		assert.ErrorIs(t, err, docs.ErrHTTPStatus)
		assert.NotErrorIs(t, err, docs.ErrTransport)

		var statusErr *docs.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("server errors are status errors", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := docs.NewHTTPFetcher().Fetch(context.Background(), srv.URL)

		var statusErr *docs.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	})

	t.Run("connection failure is a transport error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := docs.NewHTTPFetcher().Fetch(context.Background(), url)

		assert.ErrorIs(t, err, docs.ErrTransport)
		assert.NotErrorIs(t, err, docs.ErrHTTPStatus)
	})

	t.Run("timeout is a transport error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer srv.Close()

		f := docs.NewHTTPFetcher(docs.WithTimeout(50 * time.Millisecond))
		_, err := f.Fetch(context.Background(), srv.URL)

		assert.ErrorIs(t, err, docs.ErrTransport)
	})

	t.Run("cancellation is propagated", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("late"))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		body, err := docs.NewHTTPFetcher().Fetch(ctx, srv.URL)

		assert.Empty(t, body)
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, docs.ErrTransport)
	})

	t.Run("decodes gzip bodies", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		gz.Write([]byte("<p>gzipped</p>"))
		require.NoError(t, gz.Close())

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Encoding", "gzip")
			w.Write(buf.Bytes())
		}))
		defer srv.Close()

		body, err := docs.NewHTTPFetcher().Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "<p>gzipped</p>", body)
	})

	t.Run("decodes zstd bodies", func(t *testing.T) {
		t.Parallel()

		enc, err := zstd.NewWriter(nil)
		require.NoError(t, err)
		compressed := enc.EncodeAll([]byte("<p>zstd</p>"), nil)
		enc.Close()

		var gotAccept string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAccept = r.Header.Get("Accept-Encoding")
			w.Header().Set("Content-Encoding", "zstd")
			w.Write(compressed)
		}))
		defer srv.Close()

		body, err := docs.NewHTTPFetcher().Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "<p>zstd</p>", body)
		assert.Contains(t, gotAccept, "zstd")
	})

	t.Run("rejects unknown encodings", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Encoding", "compress")
			w.Write([]byte("???"))
		}))
		defer srv.Close()

		_, err := docs.NewHTTPFetcher().Fetch(context.Background(), srv.URL)

		assert.Error(t, err)
	})

	t.Run("rate limit honours cancellation", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}))
		defer srv.Close()

		f := docs.NewHTTPFetcher(docs.WithRateLimit(0.01))
		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = f.Fetch(ctx, srv.URL)

		assert.ErrorIs(t, err, docs.ErrTransport)
	})
}
