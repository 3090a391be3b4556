package domain

import "errors"

var (
	// ErrUnknownSource is returned for a source outside {agency, clinical_site}
	ErrUnknownSource = errors.New("unknown site source")

	// ErrUnknownCategory is returned for an unsupported category filter
	ErrUnknownCategory = errors.New("unknown site category")

	// ErrUnknownRole is returned for a role name outside the role ladder
	ErrUnknownRole = errors.New("unknown role")
)
