package storage

import "errors"

var ErrNotFound = errors.New("item not found in storage")
var ErrItemAlreadyExists = errors.New("item with the same key already exists")
var ErrVersionConflict = errors.New("item was modified concurrently")
