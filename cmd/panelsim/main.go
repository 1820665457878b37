//go:build !rp2040

// Panelsim runs the cockpit panel in a terminal.
//
// The LCD, the gear lamps and every value the panel writes are drawn live;
// the keyboard stands in for the two encoders, their push buttons and the
// gear switch. Nothing is sent to a simulator: the link state is toggled
// by hand.
//
// Usage:
//
//	panelsim [--board pico] [--config board.yaml] [--online]
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"omnistuff-go/errcode"
	"omnistuff-go/services/config"
)

var (
	flagBoard  string
	flagConfig string
	flagOnline bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "panelsim",
	Short: "Cockpit panel simulator",
	Long: `Runs the two-encoder cockpit panel against a scripted board.

Keys turn the encoders and press their buttons; the 16x2 display and the
gear lamps are drawn as the firmware would drive them.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBoard(flagBoard, flagConfig)
		if err != nil {
			return err
		}
		m, err := newModel(b, flagOnline)
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().StringVar(&flagBoard, "board", "pico", "embedded board to start from")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "YAML file overlaid on the board")
	rootCmd.Flags().BoolVar(&flagOnline, "online", false, "start with the simulator link up")
}

// loadBoard resolves an embedded board and overlays the fields set in path.
func loadBoard(name, path string) (config.Board, error) {
	b, ok := config.BoardLookup(name)
	if !ok {
		return b, errcode.New(errcode.UnknownBoard, "panelsim", name)
	}
	// The overlay must not write through to the embedded board.
	if b.Simlink.UART != nil {
		u := *b.Simlink.UART
		b.Simlink.UART = &u
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return b, err
		}
		if err := yaml.Unmarshal(data, &b); err != nil {
			return b, errcode.Wrap(errcode.InvalidConfig, "panelsim", err)
		}
	}
	if b.Name == "" {
		b.Name = name
	}
	return b, b.Validate()
}
