package stats

import "fmt"

// InsufficientDataError reports a statistic that cannot be computed from the
// sample at hand. It carries the minimum the operation needs so the message
// tells the user what to fix.
type InsufficientDataError struct {
	Op   string
	Need int
	Got  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: need at least %d numeric values, got %d", e.Op, e.Need, e.Got)
}
