package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const fixturePage = `<html><body>
<h1>Welcome</h1>
<img src="/images/hero-banner-large-asset.png">
<img src="/logo.png" alt="">
<img src="/ok.png" alt="Company logo">
</body></html>`

func TestScan(t *testing.T) {
	scanner := NewScannerService()

	t.Run("Detects missing and empty alt", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(fixturePage))
		}))
		defer srv.Close()

		result, err := scanner.Scan(srv.URL)
		assert.NoError(t, err)
		assert.Equal(t, 3, result.ImagesScanned)
		assert.Len(t, result.Violations, 2)
		assert.Equal(t, "Missing Alt Text", result.Violations[0].Type)
		assert.Contains(t, result.Violations[0].ElementTag, "<img")
		assert.Contains(t, result.Violations[0].Source, "/images/hero-banner-large-asset.png")
		assert.Contains(t, result.Violations[1].ElementTag, "alt=")
	})

	t.Run("Page with no images", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body><p>text only</p></body></html>"))
		}))
		defer srv.Close()

		result, err := scanner.Scan(srv.URL)
		assert.NoError(t, err)
		assert.Equal(t, 0, result.ImagesScanned)
		assert.Empty(t, result.Violations)
	})

	t.Run("Non-2xx status is a fetch error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := scanner.Scan(srv.URL)
		var fetchErr *FetchError
		assert.True(t, errors.As(err, &fetchErr))
		assert.Contains(t, fetchErr.Error(), "unexpected status 404")
	})

	t.Run("Unreachable host is a fetch error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // Closed immediately so the port refuses connections

		_, err := scanner.Scan(srv.URL)
		var fetchErr *FetchError
		assert.True(t, errors.As(err, &fetchErr))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 64))
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	got := truncate(string(long), 64)
	assert.Len(t, got, 67)
	assert.Contains(t, got, "...")
}
