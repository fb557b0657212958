package slots

import "errors"

var (
	ErrNotConfigured    = errors.New("no API base URL configured")
	ErrUnexpectedStatus = errors.New("unexpected upstream status")
	ErrDecode           = errors.New("unparsable upstream response")
)
