package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type ErrorClass int

const (
	ErrorClassPermanent ErrorClass = iota
	ErrorClassTransient
	ErrorClassDeadlock
	ErrorClassSerialization
)

func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ErrorClassPermanent
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001":
			return ErrorClassSerialization
		case "40P01":
			return ErrorClassDeadlock
		case "55P03":
			return ErrorClassTransient
		case "23505", "23503", "23502", "23514":
			return ErrorClassPermanent
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrorClassPermanent
	}

	return ErrorClassPermanent
}

func IsRetryable(err error) bool {
	class := ClassifyError(err)
	return class == ErrorClassTransient ||
		class == ErrorClassDeadlock ||
		class == ErrorClassSerialization
}

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrModuleNotFound    = errors.New("module not found")
	ErrPackageNotFound   = errors.New("package not found")
	ErrStatusNotFound    = errors.New("status not found")
	ErrContainerNotFound = errors.New("container not found")
	ErrBatchNotFound     = errors.New("batch not found")
	ErrMessageNotFound   = errors.New("message not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrInvalidUnlockCode = errors.New("invalid unlock code")
	ErrInvalidRole       = errors.New("invalid role")
	ErrDuplicateTracking = errors.New("tracking code already exists")
	ErrEmployeeDisabled  = errors.New("employee account disabled")
)
