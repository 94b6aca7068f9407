package file

import "errors"

var (
	ErrNotFound       = errors.New("file not found")
	ErrNotOwner       = errors.New("you do not own this file")
	ErrEmptyName      = errors.New("name must not be empty")
	ErrNotTrashed     = errors.New("permanent deletion is only allowed from the trash")
	ErrEmptyFile      = errors.New("file is empty")
	ErrFileTooLarge   = errors.New("file exceeds maximum allowed size")
	ErrQuotaExceeded  = errors.New("storage quota exceeded")
	ErrUploadInFlight = errors.New("another upload is already in progress")
)
