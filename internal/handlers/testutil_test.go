// internal/handlers/testutil_test.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
)

func stringReader(s string) io.Reader {
	return strings.NewReader(s)
}

func decodeBody(rec *httptest.ResponseRecorder, v interface{}) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}
