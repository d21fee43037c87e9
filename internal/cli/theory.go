package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/harmony-api/internal/theory"
)

func (a *app) keyCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "key <root>",
		Short: "Show the key signature of a root and mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := a.engine.KeySignature(args[0], mode)
			return a.print(cmd, key, func(w io.Writer) {
				if key.Count == 0 {
					fmt.Fprintf(w, "%s %s: no accidentals\n", args[0], mode)
					return
				}
				fmt.Fprintf(w, "%s %s: %d %s (%s)\n", args[0], mode, key.Count, key.Type, join(key.Accidentals))
			})
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "Major", "Mode name")
	return cmd
}

func (a *app) scaleCmd() *cobra.Command {
	var (
		mode string
		blue bool
	)
	cmd := &cobra.Command{
		Use:   "scale <root>",
		Short: "Spell the scale of a root and mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scale := a.engine.Scale(args[0], mode, blue)
			return a.print(cmd, scale, func(w io.Writer) {
				for _, d := range scale {
					if d.IsBlue {
						fmt.Fprintf(w, "   %-3s %s\n", d.Note, "blue")
						continue
					}
					fmt.Fprintf(w, "%d  %-3s %-12s %s\n", d.Number, d.Note, d.DegreeName, d.Interval)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "Major", "Mode name")
	cmd.Flags().BoolVar(&blue, "blue", false, "Insert blue notes")
	return cmd
}

var presets = map[string]theory.TensionMask{
	"none":  {},
	"basic": theory.BasicTensions,
	"jazz":  theory.JazzTensions,
	"all":   theory.AllTensions,
}

func (a *app) chordsCmd() *cobra.Command {
	var (
		mode   string
		preset string
	)
	cmd := &cobra.Command{
		Use:   "chords <root>",
		Short: "List the diatonic chords of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mask, ok := presets[preset]
			if !ok {
				return fmt.Errorf("unknown tension preset %q", preset)
			}
			chords := a.engine.DiatonicChords(a.engine.Scale(args[0], mode, false), mode, mask)
			return a.print(cmd, chords, func(w io.Writer) {
				for _, c := range chords {
					fmt.Fprintf(w, "%-6s %-14s %-12s %s\n", c.Roman, c.Name, c.Function, join(c.Notes))
				}
			})
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "Major", "Mode name")
	cmd.Flags().StringVarP(&preset, "tensions", "t", "basic", "Tension preset: none, basic, jazz or all")
	return cmd
}
