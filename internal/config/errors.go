package config

import "errors"

// ErrInvalidFeeBps indicates a fee outside [0, 10000).
var ErrInvalidFeeBps = errors.New("fee bps must be an integer in [0, 10000)")

// ErrInvalidLogFormat indicates a LOG_FORMAT other than text or json.
var ErrInvalidLogFormat = errors.New("log format must be text or json")

// ErrInvalidPoolFile indicates a pool file with missing or malformed fields.
var ErrInvalidPoolFile = errors.New("invalid pool file")
