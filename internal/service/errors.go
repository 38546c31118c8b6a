package service

import "errors"

var (
	ErrInternal         = errors.New("internal server error")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("only the author can change this comment")
	ErrEmptyText        = errors.New("comment text must not be empty")
	ErrAmbiguousParent  = errors.New("comment must belong to exactly one of verse, recipe, note or picture")
	ErrParentNotFound   = errors.New("comment parent not found")
	ErrPersonNotFound   = errors.New("person not found")
)
