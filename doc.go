// Package commission computes the commission fee charged on cash operations.
//
// Every operation of an ordered feed is either a deposit (cash in) or a
// withdrawal (cash out), made by an individual or a business user, in one of
// the supported currencies. The fee is computed in the reference currency
// (EUR) and reported back in the operation currency:
//   - Deposits: a percentage of the amount, capped.
//   - Business withdrawals: a percentage of the amount, with a minimum.
//   - Individual withdrawals: free up to a weekly allowance per user, the
//     excess being charged. The allowance is tracked by a QuotaTracker whose
//     state depends on the order of the operations.
//
// An Engine owns the whole state of one processing pass. It never reorders
// its input and never turns an error into a zero fee.
//
// This package serves as the foundational logic for the `pcf` command-line
// tool.
package commission
