package lostfound

import "errors"

var (
	ErrNotFound  = errors.New("item not found")
	ErrForbidden = errors.New("not the item owner")
)
