package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrCreateFailed = errors.New("insert returned no row")
)
