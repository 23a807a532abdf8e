// Package input parses the two-line textual problem format: the capacity on
// the first line and whitespace- or comma-delimited weight:value tokens on the
// second. Parsing is strict: trailing garbage, malformed tokens, and integers
// outside the int range are rejected. Semantic validation (positive weights,
// non-negative values, bounds) is left to the solver.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/eugenenazirov/knapsack-solver/internal/solver"
)

const (
	capacityLineMax = 256
	itemLineMax     = 8192
)

var (
	// ErrMissingLine is returned when the input ends before both lines were read.
	ErrMissingLine = errors.New("input must contain a capacity line and an items line")
	// ErrLineTooLong is returned when a line exceeds its size cap.
	ErrLineTooLong = errors.New("input line exceeds the maximum length")
)

// Problem is a parsed solver input.
type Problem struct {
	Capacity int
	Items    []solver.Item
}

// ParseFile reads a problem description from the named file.
func ParseFile(path string) (Problem, error) {
	file, err := os.Open(path)
	if err != nil {
		return Problem{}, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	return ParseProblem(file)
}

// ParseProblem reads a problem description from r. Content beyond the second
// line is ignored.
func ParseProblem(r io.Reader) (Problem, error) {
	reader := bufio.NewReader(r)

	capacityLine, err := readLine(reader, capacityLineMax)
	if err != nil {
		return Problem{}, fmt.Errorf("capacity line: %w", err)
	}
	capacity, err := parseCapacity(capacityLine)
	if err != nil {
		return Problem{}, err
	}

	itemLine, err := readLine(reader, itemLineMax)
	if err != nil {
		return Problem{}, fmt.Errorf("items line: %w", err)
	}
	items, err := parseItems(itemLine)
	if err != nil {
		return Problem{}, err
	}

	return Problem{Capacity: capacity, Items: items}, nil
}

// readLine returns the next line without its terminator, enforcing maxLen.
// A final line without a newline is accepted.
func readLine(reader *bufio.Reader, maxLen int) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if line == "" {
		return "", ErrMissingLine
	}
	if len(line) > maxLen {
		return "", ErrLineTooLong
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func parseCapacity(line string) (int, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return 0, fmt.Errorf("parse capacity: empty line")
	}
	capacity, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse capacity %q: %w", trimmed, err)
	}
	if capacity < 0 {
		return 0, fmt.Errorf("parse capacity: %d is negative", capacity)
	}
	return capacity, nil
}

func parseItems(line string) ([]solver.Item, error) {
	tokens := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\r'
	})

	items := make([]solver.Item, 0, len(tokens))
	for _, token := range tokens {
		item, err := parseItemToken(token)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("parse items: no weight:value tokens found")
	}
	return items, nil
}

func parseItemToken(token string) (solver.Item, error) {
	weightStr, valueStr, found := strings.Cut(token, ":")
	if !found || weightStr == "" || valueStr == "" {
		return solver.Item{}, fmt.Errorf("parse item %q: expected weight:value", token)
	}

	weight, err := strconv.Atoi(weightStr)
	if err != nil {
		return solver.Item{}, fmt.Errorf("parse item weight %q: %w", weightStr, err)
	}
	if weight < 0 {
		return solver.Item{}, fmt.Errorf("parse item %q: weight is negative", token)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return solver.Item{}, fmt.Errorf("parse item value %q: %w", valueStr, err)
	}

	return solver.Item{Weight: weight, Value: value}, nil
}
