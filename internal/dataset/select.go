package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidOption is returned when a dataset choice is neither "1" nor "2".
var ErrInvalidOption = errors.New("invalid option")

// Choice selects one of the two known datasets.
type Choice string

const (
	ChoicePerformance Choice = "1"
	ChoiceDropout     Choice = "2"
)

// Catalog holds the paths of the two known datasets.
type Catalog struct {
	Performance string
	Dropout     string
}

// Resolve maps a choice to its path.
func (c Catalog) Resolve(choice Choice) (string, error) {
	switch Choice(strings.TrimSpace(string(choice))) {
	case ChoicePerformance:
		return c.Performance, nil
	case ChoiceDropout:
		return c.Dropout, nil
	}
	return "", fmt.Errorf("%w: %q (use 1 or 2)", ErrInvalidOption, string(choice))
}

// Prompt writes the dataset menu to w and reads one answer line from r.
func Prompt(r io.Reader, w io.Writer) (Choice, error) {
	fmt.Fprintln(w, "Which dataset do you want to load?")
	fmt.Fprintln(w, "1 = Performance rate")
	fmt.Fprintln(w, "2 = Dropout rate")
	fmt.Fprint(w, "Enter 1 or 2: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read choice: %w", err)
	}
	return Choice(strings.TrimSpace(line)), nil
}
