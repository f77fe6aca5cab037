package voting

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is a program error with a stable numeric code that clients can match on.
type Error struct {
	Code    uint32
	Name    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d) : %s", e.Name, e.Code, e.Message)
}

var (
	ErrAlreadyInitialized = &Error{6000, "AlreadyInitialized", "Account already initialized"}
	ErrInvalidInput       = &Error{6001, "InvalidInput", "Invalid instruction input"}
	ErrNotFound           = &Error{6002, "NotFound", "Account not found"}
	ErrInvalidAccount     = &Error{6003, "InvalidAccount", "Account does not match its derived address"}
	ErrPollNotActive      = &Error{6004, "PollNotActive", "Poll is not open for voting"}
	ErrAlreadyVoted       = &Error{6005, "AlreadyVoted", "Signer already voted in this poll"}
	ErrMissingSigner      = &Error{6006, "MissingSigner", "Instruction requires a signer"}
)

// ErrorFromCode returns the program error for a code.
func ErrorFromCode(code uint32) (*Error, bool) {
	for _, e := range []*Error{ErrAlreadyInitialized, ErrInvalidInput, ErrNotFound,
		ErrInvalidAccount, ErrPollNotActive, ErrAlreadyVoted, ErrMissingSigner} {
		if e.Code == code {
			return e, true
		}
	}
	return nil, false
}

// ProgramError returns the program error at the root of err, if there is one.
func ProgramError(err error) (*Error, bool) {
	pe, ok := errors.Cause(err).(*Error)
	return pe, ok
}
