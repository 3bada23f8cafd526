package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rentloop/handoff/pkg/handoffsdk"
	"github.com/rentloop/handoff/pkg/httpx"
)

var validate = validator.New()

// decodeJSON parses and validates a request body into v. On failure it has
// already written the 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, handoffsdk.ErrorResponse{
			Error:            handoffsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return false
	}

	if err := validate.Struct(v); err != nil {
		desc := "Validation failed"
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			desc = "Invalid field: " + fieldErrs[0].Field()
		}
		httpx.WriteJSON(w, http.StatusBadRequest, handoffsdk.ErrorResponse{
			Error:            handoffsdk.ErrorCodeInvalidRequest,
			ErrorDescription: desc,
		})
		return false
	}

	return true
}
