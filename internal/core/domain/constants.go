package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrEmptyPrompt        = errors.New("empty prompt")
	ErrPageNotFound       = errors.New("page not found")
	ErrDisambiguation     = errors.New("ambiguous query")
	ErrUnknownCurrency    = errors.New("unknown currency")
)
