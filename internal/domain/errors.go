package domain

import "errors"

var (
	ErrEmptyCatalog    = errors.New("catalog has no valid records")
	ErrCatalogNotReady = errors.New("catalog not loaded")
	ErrCacheClosed     = errors.New("cache store closed")
)
