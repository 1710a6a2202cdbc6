package webutil

import (
	"encoding/json"
	"net/http"

	"yanindayim/internal/model"
)

// DecodeJSONBody decodes the request body into dst. Unknown fields are
// tolerated; the original clients send extra UI state alongside the payload.
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.ErrInvalidInput
	}
	return nil
}
