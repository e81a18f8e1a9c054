package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_Health(t *testing.T) {
	h, _ := setupTestHandler(t)
	r := setupTestRouter(h)

	w := performJSON(r, "GET", "/", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "SentryPrime AI Report Engine", resp["service"])
	assert.Equal(t, "Not Configured", resp["ai_status"])
}
