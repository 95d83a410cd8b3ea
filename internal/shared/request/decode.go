package request

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"planets-api/internal/shared/errors"
)

// DecodeJSON decodes the request body into dst, converting decoder
// failures into validation errors. A type mismatch on a known field, such
// as a string where a number belongs, names the offending field.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && typeErr.Field != "" {
			return errors.Validationf("invalid value for field %q", typeErr.Field)
		}
		return errors.WrapValidation("invalid JSON body", err)
	}
	return nil
}
