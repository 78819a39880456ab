package usecase

import "errors"

// ErrPersistence wraps storage failures so controllers can map them to 500s
// without leaking driver details.
var ErrPersistence = errors.New("persistence error")
