package services

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrPasswordIncorrect = errors.New("password incorrect")

	ErrGroupNotFound = errors.New("group not found")
	ErrPostNotFound  = errors.New("post not found")

	ErrTextRequired  = errors.New("text must not be empty")
	ErrNotPostAuthor = errors.New("only the author can edit a post")
)
