package commission

import (
	"github.com/etnz/commission/date"
	"github.com/shopspring/decimal"
)

// eur is a helper for test to create euro money from a decimal string.
func eur(v string) Money { return mustMoney(v, EUR) }

// mustMoney is a helper for test to create money from a decimal string.
func mustMoney(v string, cur Currency) Money {
	m, err := ParseMoney(v, cur)
	if err != nil {
		panic(err)
	}
	return m
}

// dec is a helper for test to create a decimal from a string.
func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// cashOut is a helper for test to create an individual withdrawal.
func cashOut(on, user, amount string, cur Currency) Operation {
	return NewOperation(date.MustParse(on), user, Individual, Withdrawal, mustMoney(amount, cur))
}

// parseOp is a helper for test to create an operation from the six feed fields.
func parseOp(on, user, userType, opType, amount, cur string) Operation {
	ut, err := ParseUserType(userType)
	if err != nil {
		panic(err)
	}
	ot, err := ParseOperationType(opType)
	if err != nil {
		panic(err)
	}
	c, err := ParseCurrency(cur)
	if err != nil {
		panic(err)
	}
	return NewOperation(date.MustParse(on), user, ut, ot, mustMoney(amount, c))
}
