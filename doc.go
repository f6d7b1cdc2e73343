// Package wealth provides the aggregation and reconciliation core of a
// personal finance tracker whose data of record lives in a spreadsheet.
//
// Every function of the package is a pure computation over records that were
// already loaded by the caller. Nothing here performs I/O or holds shared
// mutable state, so the functions can be called repeatedly and concurrently.
//
// The core functionalities include:
//   - Temporal windows: resolving a focus (month-to-date, year-to-date,
//     rolling 12 months, ...) into a current and a comparable shadow range.
//   - Net worth attribution: splitting the change of net worth over a window
//     into net contributions (income minus expenses) and market gain, using a
//     Dietz money-weighted return.
//   - Portfolio attribution: separating trade driven contributions from
//     market alpha in a series of portfolio snapshots, with max drawdown
//     and growth velocity.
//   - Trade lots: grouping trades by ticker into open and exited positions
//     with their average cost.
//   - Spending hierarchy: a category, subcategory and leaf tree built from
//     itemized journal entries and ledger summary rows, with unallocated
//     amounts, variance against a rolling median and long tail collapsing.
//   - Flow charts: grouping spending by drill path and month for a current
//     and a shadow window.
//
// Callers must supply pre-filtered and pre-sorted inputs where a function
// documents it: the package does not re-sort defensively.
package wealth
