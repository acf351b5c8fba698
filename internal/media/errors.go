package media

import "errors"

var (
	// ErrBackendUnavailable wraps transport failures and non-success responses.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrNotFound means no catalog record matched the requested id.
	ErrNotFound = errors.New("not found")

	// ErrEpisodeOutOfRange means a season label or episode index does not
	// address an existing slot of the series.
	ErrEpisodeOutOfRange = errors.New("episode out of range")

	// ErrMalformedToken means a token string could not be decoded.
	ErrMalformedToken = errors.New("malformed token")

	// ErrUnsupportedKind means a kind outside movie/series was supplied.
	ErrUnsupportedKind = errors.New("unsupported kind")
)
