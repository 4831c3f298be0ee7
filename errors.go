package commission

import "errors"

// Errors reported by the calculator. They are always wrapped with context,
// test them with errors.Is.
var (
	// ErrMalformedRecord reports an operation with a missing field or with a
	// date or an amount that cannot be parsed.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrUnsupportedCurrency reports a currency with no conversion rate.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrUnknownUserType reports a user type other than natural or legal.
	ErrUnknownUserType = errors.New("unknown user type")
	// ErrUnknownOperationType reports an operation type other than cash_in or cash_out.
	ErrUnknownOperationType = errors.New("unknown operation type")
	// ErrNegativeAmount reports an operation amount below zero.
	ErrNegativeAmount = errors.New("negative amount")
)
