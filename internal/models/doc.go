// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - Group: a set of members sharing expenses, each with a running balance
//   - Expense: one shared expense with its resolved per-member shares
//   - ExpenseShare: the persisted share of one member for one expense
//   - Settlement: a recorded payment between two members
//   - MemberBalance: a snapshot of one member's net position in a group
//
// Members are identified by name strings within their group. Monetary fields
// use money.Money everywhere; nothing in the model layer touches binary
// floating point.
//
// # Design principles
//
//  1. The running ledger (per-member balance) is the source of truth for
//     balances; expenses and settlements mutate it atomically.
//  2. Relationships use ID strings rather than pointers to avoid circular
//     references.
//  3. Models are plain data; all arithmetic lives in the calculator package.
package models
