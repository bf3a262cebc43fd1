package util

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/types"
)

// Resolves a status code from an error
func ResponseCodeFromError(err error) int {
	var notFound *db.NotFoundError
	var duplicate *db.DuplicateIDError
	var invalidState *db.InvalidStateError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &duplicate), errors.As(err, &invalidState):
		return http.StatusConflict
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.EOF):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Creates a standardized error response
func Error(w http.ResponseWriter, originalError error) {
	ErrorWithCode(w, originalError, ResponseCodeFromError(originalError))
}

// Creates a standardized error response with a status code
func ErrorWithCode(w http.ResponseWriter, originalError error, statusCode int) {
	response := types.ErrorResponse{
		Message: fmt.Sprint(originalError),
	}

	jsonResponse, err := json.Marshal(response)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(jsonResponse)
}

// BadRequest creates a standardized 400 response
func BadRequest(w http.ResponseWriter, message string) {
	ErrorWithCode(w, errors.New(message), http.StatusBadRequest)
}
