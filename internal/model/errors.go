package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrResourceNotFound *ErrNotFound
	ErrImageNotFound    *ErrNotFound

	ErrFileRemovalNotSupported = errors.New("removing the file of a resource is not supported")
	ErrInvalidId               = errors.New("invalid id")
)

type ErrNotFound struct {
	Subject string
}

func (e *ErrNotFound) Error() string {
	return strings.TrimSpace(fmt.Sprintf("%s not found", e.Subject))
}

func NewErrNotFound(subject string) *ErrNotFound {
	return &ErrNotFound{Subject: subject}
}

func init() {
	ErrResourceNotFound = NewErrNotFound("resource")
	ErrImageNotFound = NewErrNotFound("image")
}
