// Package cli implements the harmonyctl commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/harmony-api/internal/config"
	"github.com/Conceptual-Machines/harmony-api/internal/progression"
	"github.com/Conceptual-Machines/harmony-api/internal/theory"
)

const (
	formatJSON = "json"
	formatText = "text"
)

// app carries what every command needs. It is built once per invocation.
type app struct {
	format       string
	engine       *theory.Engine
	progressions *progression.Service
	defaults     config.EngineDefaults
}

// NewRootCmd builds the harmonyctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{engine: theory.NewEngine()}
	a.progressions = progression.NewService(a.engine)

	root := &cobra.Command{
		Use:           "harmonyctl",
		Short:         "Music theory engine on the command line",
		Long:          "Key signatures, diatonic chords, reharmonization and piano voicings. Output is JSON unless --format text is given.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.format != formatJSON && a.format != formatText {
				return fmt.Errorf("unknown output format %q", a.format)
			}
			_ = godotenv.Load() // .env is optional
			a.defaults = config.Load().EngineDefaults()
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.format, "format", "f", formatJSON, "Output format: json or text")

	root.AddCommand(
		a.keyCmd(),
		a.scaleCmd(),
		a.chordsCmd(),
		a.progressionsCmd(),
		a.progressionCmd(),
		a.analyzeCmd(),
		a.coltraneCmd(),
		a.reharmCmd(),
		a.voicingCmd(),
		a.leadCmd(),
		a.midiCmd(),
	)
	return root
}

// print writes v as indented JSON, or through text when --format text is set.
func (a *app) print(cmd *cobra.Command, v interface{}, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if a.format == formatText {
		text(w)
		return nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func join(items []string) string {
	return strings.Join(items, " ")
}
