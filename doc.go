// Package bitcointx turns single-entry financial events into the
// double-entry payloads expected by the BitcoinTX ledger.
//
// A user thinks in terms of "I deposited 0.5 BTC into my wallet" or "I
// bought 0.02 BTC for $1000". The ledger thinks in terms of postings between
// numbered accounts with an amount, a fee, and a USD cost basis or proceeds.
// This package bridges the two:
//   - Entries: one struct per transaction type (Deposit, Withdrawal,
//     Transfer, Buy, Sell), each carrying only the fields relevant to it.
//   - Accounts: a fixed mapping from an account kind and currency to the
//     ledger's account identifiers, and from an entry to its posting.
//   - Schema: which fields of an entry are required, optional, read-only or
//     hidden given the values already entered.
//   - Payloads: the validated, normalized wire representation of an entry,
//     ready to be sent to the ledger API.
//
// Reactive derivation of dependent fields lives in package form, the
// submission state machine in package submit, and the HTTP adapter in
// package client.
package bitcointx
