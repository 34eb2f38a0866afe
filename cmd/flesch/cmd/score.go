package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/f3rmion/flesch/internal/clipboard"
	"github.com/f3rmion/flesch/internal/form"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [text...]",
	Short: "Score text once and print the result",
	Long: `Send text to the scoring service and print the grade and score.

Arguments are joined with a single space. With no arguments the text is
read from stdin; one trailing line break is dropped. Empty text sends
nothing.

Example:
  flesch score "The quick brown fox."
  cat essay.txt | flesch score`,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().Bool("copy", false, "copy the result to the clipboard")
}

// staticField is an input field holding fixed text.
type staticField string

func (f staticField) Value() string { return string(f) }

// valueDisplay records the text written to it.
type valueDisplay struct {
	text string
	set  bool
}

func (d *valueDisplay) SetText(text string) {
	d.text = text
	d.set = true
}

func runScore(cmd *cobra.Command, args []string) error {
	copyResult, _ := cmd.Flags().GetBool("copy")

	text, err := readScoreText(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closer := openLogger()
	defer closer.Close()

	grade, score, err := scoreOnce(cmd.Context(), newClient(cfg), logger, text, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if copyResult && (grade.set || score.set) {
		if err := clipboard.Write(clipboard.FormatResult(grade.text, score.text)); err != nil {
			return fmt.Errorf("copying result: %w", err)
		}
	}

	return nil
}

// readScoreText takes the text from args, or from r when there are none.
func readScoreText(r io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	text = strings.TrimSuffix(text, "\r")
	return text, nil
}

// scoreOnce runs a single click cycle through the form controller and
// prints whichever results arrived.
func scoreOnce(ctx context.Context, scorer form.Scorer, logger *slog.Logger, text string, out io.Writer) (*valueDisplay, *valueDisplay, error) {
	grade, score := &valueDisplay{}, &valueDisplay{}
	ctrl := form.NewController(staticField(text), grade, score, scorer, form.WithLogger(logger))

	task, ok := ctrl.HandleClick(ctx)
	if !ok {
		return grade, score, nil
	}

	done := task()
	done.Apply()
	if done.Err != nil {
		return grade, score, fmt.Errorf("scoring text: %w", done.Err)
	}

	if grade.set {
		fmt.Fprintf(out, "Grade: %s\n", grade.text)
	}
	if score.set {
		fmt.Fprintf(out, "Score: %s\n", score.text)
	}

	return grade, score, nil
}
