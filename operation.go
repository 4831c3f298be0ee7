package commission

import (
	"fmt"
	"strings"

	"github.com/etnz/commission/date"
)

// UserType is the category of the user performing an operation.
type UserType int

const (
	_          UserType = iota // zero value is invalid
	Individual                 // "natural"
	Business                   // "legal"
)

// ParseUserType parses the feed representation of a user type.
func ParseUserType(s string) (UserType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "natural":
		return Individual, nil
	case "legal":
		return Business, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUserType, s)
	}
}

func (u UserType) String() string {
	switch u {
	case Individual:
		return "natural"
	case Business:
		return "legal"
	default:
		return fmt.Sprintf("UserType(%d)", int(u))
	}
}

// OperationType is the kind of cash operation.
type OperationType int

const (
	_          OperationType = iota // zero value is invalid
	Deposit                         // "cash_in"
	Withdrawal                      // "cash_out"
)

// ParseOperationType parses the feed representation of an operation type.
func ParseOperationType(s string) (OperationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash_in":
		return Deposit, nil
	case "cash_out":
		return Withdrawal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperationType, s)
	}
}

func (o OperationType) String() string {
	switch o {
	case Deposit:
		return "cash_in"
	case Withdrawal:
		return "cash_out"
	default:
		return fmt.Sprintf("OperationType(%d)", int(o))
	}
}

// Operation is a single cash operation of the input feed.
type Operation struct {
	Date     date.Date
	UserID   string
	UserType UserType
	Type     OperationType
	Amount   Money // in the operation currency
}

// NewOperation creates a new Operation.
func NewOperation(on date.Date, user string, userType UserType, opType OperationType, amount Money) Operation {
	return Operation{Date: on, UserID: user, UserType: userType, Type: opType, Amount: amount}
}

// Currency returns the currency of the operation.
func (op Operation) Currency() Currency { return op.Amount.Currency() }

// Validate checks that op can be priced. It returns the first failure found.
func (op Operation) Validate() error {
	if op.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrMalformedRecord)
	}
	if strings.TrimSpace(op.UserID) == "" {
		return fmt.Errorf("%w: missing user id", ErrMalformedRecord)
	}
	switch op.UserType {
	case Individual, Business:
	default:
		return fmt.Errorf("%w: %v", ErrUnknownUserType, op.UserType)
	}
	switch op.Type {
	case Deposit, Withdrawal:
	default:
		return fmt.Errorf("%w: %v", ErrUnknownOperationType, op.Type)
	}
	if !op.Currency().Supported() {
		return fmt.Errorf("%w: %q", ErrUnsupportedCurrency, op.Currency())
	}
	if op.Amount.IsNegative() {
		return fmt.Errorf("%w: %s %s", ErrNegativeAmount, op.Amount.Value(), op.Currency())
	}
	return nil
}

// MarshalJSON writes op with the same keys the JSON feed reads.
func (op Operation) MarshalJSON() ([]byte, error) {
	var w orderedObject
	w.Set("date", op.Date)
	w.Set("user_id", op.UserID)
	w.Set("user_type", op.UserType.String())
	w.Set("operation_type", op.Type.String())
	w.Set("amount", op.Amount.Value())
	w.Set("currency", op.Currency())
	return w.MarshalJSON()
}
