package postgres

import "errors"

var (
	ErrUnknownParentKind  = errors.New("unknown parent kind")
	ErrStreamItemNotFound = errors.New("stream item not found")
)
