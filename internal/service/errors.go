package service

import "errors"

var (
	ErrRestoreFailed = errors.New("failed to restore sync state")
	ErrSaveFailed    = errors.New("failed to save sync state")
	ErrRevokeFailed  = errors.New("failed to clear sync state")
)
