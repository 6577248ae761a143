//go:build unit || e2e

package httptest

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const HeaderSharerUserID = "X-Sharer-User-Id"

// PerformRequest executes an HTTP request. A positive userID is sent as the
// X-Sharer-User-Id header.
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, userID int64) *httptest.ResponseRecorder {
	t.Helper()

	var headers map[string]string
	if userID > 0 {
		headers = map[string]string{HeaderSharerUserID: strconv.FormatInt(userID, 10)}
	}
	return PerformRequestWithHeaders(t, router, method, path, body, headers)
}

func PerformRequestWithHeaders(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Failed to encode request body to JSON")
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
