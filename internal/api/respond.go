package api

import (
	"encoding/json"
	"net/http"

	"github.com/tokenized/pkg/logger"
	"github.com/tokenized/voting/internal/platform/node"
	"github.com/tokenized/voting/internal/runtime"
	"github.com/tokenized/voting/internal/voting"

	"github.com/pkg/errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  uint32 `json:"code,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Respond writes data as JSON with the status code.
func Respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		v := node.ValuesFromContext(r.Context())
		logger.Error(r.Context(), "%s : Failed to encode response : %s", v.TraceID, err)
	}
}

// RespondError maps err to a status code and writes it as an ErrorResponse.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorStatus(err)

	v := node.ValuesFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "%s : %s %s failed : %s", v.TraceID, r.Method, r.URL.Path, err)
	} else {
		logger.Warn(r.Context(), "%s : %s %s rejected : %s", v.TraceID, r.Method, r.URL.Path,
			err)
	}

	Respond(w, r, status, body)
}

func errorStatus(err error) (int, *ErrorResponse) {
	body := &ErrorResponse{Error: err.Error()}

	if pe, ok := voting.ProgramError(err); ok {
		body.Code = pe.Code
		body.Name = pe.Name

		switch pe {
		case voting.ErrNotFound:
			return http.StatusNotFound, body
		case voting.ErrAlreadyInitialized, voting.ErrAlreadyVoted:
			return http.StatusConflict, body
		case voting.ErrPollNotActive:
			return http.StatusUnprocessableEntity, body
		case voting.ErrMissingSigner:
			return http.StatusUnauthorized, body
		default:
			return http.StatusBadRequest, body
		}
	}

	switch errors.Cause(err) {
	case runtime.ErrMissingSignature, runtime.ErrInvalidSigner, ErrMissingSigner:
		return http.StatusUnauthorized, body
	case ErrInvalidParameter:
		return http.StatusBadRequest, body
	}

	return http.StatusInternalServerError, body
}
