// Command solve reads a two-line problem description (capacity, then
// weight:value tokens), solves it, and prints the optimal selection as text
// or JSON.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/eugenenazirov/knapsack-solver/internal/input"
	"github.com/eugenenazirov/knapsack-solver/internal/output"
	"github.com/eugenenazirov/knapsack-solver/internal/solver"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New("solve", "Computes the exact 0/1 knapsack optimum for a two-line problem file")
	kingpinApp.UsageWriter(stdout)
	kingpinApp.ErrorWriter(stderr)
	kingpinApp.Terminate(nil)
	inputPath := kingpinApp.Arg("input", "Path to the problem file, or - for stdin").Required().String()
	asJSON := kingpinApp.Flag("json", "Emit the result as a JSON object").Bool()
	maxItems := kingpinApp.Flag("max-items", "Maximum number of items accepted").Default("0").Int()
	maxCapacity := kingpinApp.Flag("max-capacity", "Maximum capacity accepted").Default("0").Int()

	if _, err := kingpinApp.Parse(args); err != nil {
		fmt.Fprintf(stderr, "%s: error: %v\n", kingpinApp.Name, err)
		return 2
	}

	problem, err := readProblem(*inputPath, stdin)
	if err != nil {
		return fail(stdout, stderr, *asJSON, output.CodeParse, err)
	}

	bounds := solver.DefaultBounds()
	if *maxItems > 0 {
		bounds.MaxItems = *maxItems
	}
	if *maxCapacity > 0 {
		bounds.MaxCapacity = *maxCapacity
	}

	result, err := solver.NewWithBounds(bounds).Solve(problem.Items, problem.Capacity)
	if err != nil {
		return fail(stdout, stderr, *asJSON, output.Code(err), err)
	}

	if *asJSON {
		if err := output.WriteJSON(stdout, result); err != nil {
			fmt.Fprintf(stderr, "write result: %v\n", err)
			return 1
		}
		return 0
	}

	if err := output.WriteText(stdout, result); err != nil {
		fmt.Fprintf(stderr, "write result: %v\n", err)
		return 1
	}
	return 0
}

func readProblem(path string, stdin io.Reader) (input.Problem, error) {
	if path == "-" {
		return input.ParseProblem(stdin)
	}
	return input.ParseFile(path)
}

// fail reports the error on the chosen boundary format and returns the
// process exit code.
func fail(stdout, stderr io.Writer, asJSON bool, code string, err error) int {
	if asJSON {
		_ = output.WriteJSONError(stdout, code)
	} else {
		fmt.Fprintf(stderr, "solve failed: %v\n", err)
	}
	return 1
}
