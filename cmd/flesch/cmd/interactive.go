package cmd

import (
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch the interactive scoring form",
	Long: `Launch the terminal form for scoring text.

Features:
  - Type or paste any text into the input field
  - Press the Score button to send it to the scoring service
  - Grade level and reading ease appear as soon as the response arrives

Controls:
  ctrl+s      Score the current text
  tab         Move between input and Score button
  enter       Press the button (when focused)
  ctrl+y      Copy the result
  esc         Quit`,
	RunE: runForm,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
