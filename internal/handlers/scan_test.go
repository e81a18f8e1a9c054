package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIEnhancedScan(t *testing.T) {
	h, _ := setupTestHandler(t)
	r := setupTestRouter(h)

	t.Run("Missing URL", func(t *testing.T) {
		w := performJSON(r, "POST", "/api/scan/ai-enhanced", map[string]string{}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unenriched violations when AI is not configured", func(t *testing.T) {
		target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(scanFixture))
		}))
		defer target.Close()

		w := performJSON(r, "POST", "/api/scan/ai-enhanced", map[string]string{
			"url": target.URL,
		}, "")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			URL             string                   `json:"url"`
			ViolationsCount int                      `json:"violations_count"`
			Results         []map[string]interface{} `json:"results"`
			Status          string                   `json:"status"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)

		assert.Equal(t, target.URL, resp.URL)
		assert.Equal(t, 2, resp.ViolationsCount)
		assert.Equal(t, "completed_ai_analysis", resp.Status)
		for _, violation := range resp.Results {
			assert.Equal(t, "AI analysis is not configured.", violation["ai_recommendation"])
		}
	})

	t.Run("Enrichment is capped at 3 violations", func(t *testing.T) {
		target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`<html><body>
<img src="/1.png"><img src="/2.png"><img src="/3.png"><img src="/4.png"><img src="/5.png">
</body></html>`))
		}))
		defer target.Close()

		w := performJSON(r, "POST", "/api/scan/ai-enhanced", map[string]string{
			"url": target.URL,
		}, "")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			ViolationsCount int `json:"violations_count"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, 3, resp.ViolationsCount)
	})

	t.Run("Fetch failure", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer broken.Close()

		w := performJSON(r, "POST", "/api/scan/ai-enhanced", map[string]string{
			"url": broken.URL,
		}, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
