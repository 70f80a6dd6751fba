// Package folio computes the profit and loss of a personal stock portfolio.
//
// It is designed to be run as a small batch over a file of buy and sell
// transactions, and to produce a flat report that can be opened in any
// spreadsheet.
//
// The core functionalities include:
//   - Transactions: strongly typed buy/sell records, validated when they are
//     decoded from their JSON file.
//   - Aggregation: folding transactions into one Position per security.
//   - Valuation: combining a Position with a current Quote into a
//     PositionResult, and all results into a portfolio Summary.
//   - Reporting: writing results as CSV, XLSX or JSON.
//
// Prices are resolved by the quote package, and the pnl command line tool
// glues all of it together.
package folio
