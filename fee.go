package commission

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// FeeSchedule holds the fee rates and limits. Amounts are in the Reference
// currency, rates are fractions (0.003 is 0.3%).
type FeeSchedule struct {
	DepositRate           decimal.Decimal
	DepositMax            decimal.Decimal
	WithdrawalRate        decimal.Decimal
	BusinessWithdrawalMin decimal.Decimal
	FreeAllowance         decimal.Decimal // weekly free withdrawal amount of an individual user
	FreeOperations        int             // weekly free withdrawals of an individual user
	Rollover              Rollover
	StrictWeek            bool // windows span one ISO week instead of two adjacent ones
}

// DefaultSchedule returns the standard fee schedule.
func DefaultSchedule() FeeSchedule {
	return FeeSchedule{
		DepositRate:           decimal.RequireFromString("0.0003"),
		DepositMax:            decimal.NewFromInt(5),
		WithdrawalRate:        decimal.RequireFromString("0.003"),
		BusinessWithdrawalMin: decimal.RequireFromString("0.5"),
		FreeAllowance:         decimal.NewFromInt(1000),
		FreeOperations:        3,
		Rollover:              RolloverReset,
	}
}

// FeeCalculator applies the fee schedule to operations amounts already
// normalized to the Reference currency.
type FeeCalculator struct {
	schedule FeeSchedule
	quota    *QuotaTracker
}

// NewFeeCalculator returns a calculator with a fresh QuotaTracker.
func NewFeeCalculator(schedule FeeSchedule, log zerolog.Logger) *FeeCalculator {
	return &FeeCalculator{schedule: schedule, quota: NewQuotaTracker(schedule, log)}
}

// Quota returns the tracker holding the individual withdrawal windows.
func (c *FeeCalculator) Quota() *QuotaTracker { return c.quota }

// Deposit returns the fee of a deposit of amount, whatever the user type.
func (c *FeeCalculator) Deposit(amount decimal.Decimal) decimal.Decimal {
	return decimal.Min(amount.Mul(c.schedule.DepositRate), c.schedule.DepositMax)
}

// BusinessWithdrawal returns the fee of a business user withdrawal of amount.
func (c *FeeCalculator) BusinessWithdrawal(amount decimal.Decimal) decimal.Decimal {
	return decimal.Max(amount.Mul(c.schedule.WithdrawalRate), c.schedule.BusinessWithdrawalMin)
}

// Fee returns the fee of op, given its amount in the Reference currency.
func (c *FeeCalculator) Fee(op Operation, amount decimal.Decimal) (decimal.Decimal, error) {
	switch op.Type {
	case Deposit:
		return c.Deposit(amount), nil
	case Withdrawal:
		switch op.UserType {
		case Business:
			return c.BusinessWithdrawal(amount), nil
		case Individual:
			return c.quota.Withdraw(op.UserID, op.Date, amount), nil
		default:
			return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrUnknownUserType, op.UserType)
		}
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrUnknownOperationType, op.Type)
	}
}
