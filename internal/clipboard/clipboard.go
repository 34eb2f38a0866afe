// Package clipboard copies score results to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Write copies text to the system clipboard.
func Write(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// Available checks if clipboard functionality is available.
func Available() bool {
	return !clipboard.Unsupported
}

// FormatResult renders a grade and score for pasting.
func FormatResult(grade, score string) string {
	return fmt.Sprintf("Grade: %s\nScore: %s", grade, score)
}
