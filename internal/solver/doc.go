// Package solver computes exact solutions to the 0/1 knapsack problem. It
// exposes a single pure entry point that validates its inputs, runs a
// two-row dynamic program with a minimal-weight tie-break, and reconstructs
// the selected item indices from a dense take matrix. The solver performs no
// I/O and keeps no state between calls, so a Solver value is safe for
// concurrent use.
package solver
