package plaid

import (
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

const codeItemLoginRequired = "ITEM_LOGIN_REQUIRED"

var (
	ErrMissingCredentials = errors.New("plaid client id and secret are required")
	ErrMissingAccessToken = errors.New("plaid access token is required")
	ErrUnknownEnvironment = errors.New("unknown plaid environment")
)

// APIError is the error body Plaid returns with non-2xx responses.
type APIError struct {
	Type           string `json:"error_type"`
	Code           string `json:"error_code"`
	Message        string `json:"error_message"`
	DisplayMessage string `json:"display_message"`
	RequestID      string `json:"request_id"`
	StatusCode     int    `json:"-"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Unknown Plaid API error"
	}

	code := e.Code
	if code == "" {
		code = "UNKNOWN"
	}

	return fmt.Sprintf("%s (%s)", msg, code)
}

// Is lets callers test for transaction.ErrReauthRequired without knowing about Plaid.
func (e *APIError) Is(target error) bool {
	switch target {
	case transaction.ErrReauthRequired:
		return e.Code == codeItemLoginRequired
	case transaction.ErrSourceUnavailable:
		return e.StatusCode >= 500
	}

	return false
}
