// Package cartera implements the accounting core of a personal equity
// portfolio denominated in two currencies: Argentine pesos (the local
// currency every operation is entered in) and US dollars (the reference
// currency used to read results net of peso devaluation).
//
// The core functionalities include:
//   - Ledger Management: recording buy and sell operations in an immutable,
//     append-only, chronological record.
//   - Holdings Derivation: recomputing per-ticker positions, weighted-average
//     cost basis and realized/unrealized profit from the operation list on
//     every mutation.
//   - Exchange-Rate Regimes: resolving which of the two Argentine dollar
//     quotes (parallel "blue" or official) applies to an operation date, and
//     fetching current or historical rates for it.
//   - Market Quotes: best-effort concurrent refresh of live stock quotes used
//     to value holdings.
//   - Data Persistence: encoding and decoding the operation ledger to a
//     human-readable, version-controllable JSONL file.
//
// This package serves as the foundational logic for the `wp` command-line
// tool, ensuring that all views are derived from a single source of truth:
// the operation list.
package cartera
