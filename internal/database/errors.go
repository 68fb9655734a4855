package db

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart  = errors.New("cart is empty")
	ErrEmptyOrder = errors.New("order has no items")
)

// NotFoundError - запись не найдена
type NotFoundError struct {
	Resource string
	Key      string
	Value    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with %s %s not found", e.Resource, e.Key, e.Value)
}

func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
