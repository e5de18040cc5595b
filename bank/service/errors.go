package service

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNoActiveAccount     = errors.New("active account not found for user")
	ErrNoActiveSession     = errors.New("no active session found")
	ErrEmailTaken          = errors.New("user with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthorized        = errors.New("could not validate credentials")
	ErrInactiveUser        = errors.New("user is not active")
	ErrMinimumBalance      = errors.New("minimum initial balance must be at least $100.0")
	ErrPhoneNotSet         = errors.New("user phone number is not set")
	ErrEmptyQuery          = errors.New("query must not be empty")
	ErrInvalidInput        = errors.New("invalid input")
)
