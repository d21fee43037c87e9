package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/harmony-api/internal/progression"
	"github.com/Conceptual-Machines/harmony-api/internal/theory"
)

func chordNames(chords []theory.Chord) []string {
	names := make([]string, len(chords))
	for i, c := range chords {
		names[i] = c.Name
	}
	return names
}

func (a *app) progressionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progressions",
		Short: "List the progression templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := a.progressions.Templates()
			if err != nil {
				return err
			}
			return a.print(cmd, templates, func(w io.Writer) {
				for _, t := range templates {
					fmt.Fprintf(w, "%-12s %-28s %s\n", t.ID, t.Name, t.Roman)
				}
			})
		},
	}
}

func (a *app) progressionCmd() *cobra.Command {
	var (
		root    string
		mode    string
		analyze bool
	)
	cmd := &cobra.Command{
		Use:   "progression <id>",
		Short: "Realise a progression template in a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := a.progressions.Template(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", err, args[0])
			}

			if analyze {
				analysis := a.progressions.Analyze(root, mode, tmpl)
				return a.print(cmd, analysis, func(w io.Writer) {
					for _, c := range analysis {
						fmt.Fprintf(w, "%-10s %s\n", c.Chord, c.Role)
					}
				})
			}

			chords := a.progressions.GenericChords(root, mode, tmpl)
			return a.print(cmd, chords, func(w io.Writer) {
				fmt.Fprintf(w, "%s in %s %s\n", tmpl.Name, root, progression.EffectiveMode(mode, tmpl))
				for _, c := range chords {
					fmt.Fprintf(w, "%-6s %s\n", c.Roman, c.Name)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&root, "root", "r", "C", "Key root")
	cmd.Flags().StringVarP(&mode, "mode", "m", "Major", "Mode name")
	cmd.Flags().BoolVar(&analyze, "analyze", false, "Show ii-V and V-I roles instead of chords")
	return cmd
}

func (a *app) analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <chord>...",
		Short: "Label ii-V-I and V-I motion in a chord list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis := progression.AnalyzeProgression(args)
			return a.print(cmd, analysis, func(w io.Writer) {
				for _, c := range analysis {
					fmt.Fprintf(w, "%-10s %s\n", c.Chord, c.Role)
				}
			})
		},
	}
}

func (a *app) coltraneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coltrane <key>",
		Short: "Coltrane changes starting from a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !theory.IsValidNote(args[0]) {
				return fmt.Errorf("invalid key %q", args[0])
			}
			chords := progression.ColtraneChanges(args[0])
			return a.print(cmd, chords, func(w io.Writer) {
				fmt.Fprintln(w, join(chordNames(chords)))
			})
		},
	}
}

type reharmOutput struct {
	Chord             string              `json:"chord"`
	SecondaryDominant *theory.ChordSymbol `json:"secondaryDominant,omitempty"`
	TritoneSubstitute *theory.ChordSymbol `json:"tritoneSubstitute,omitempty"`
	RelatedII         *theory.ChordSymbol `json:"relatedII,omitempty"`
	Substitutes       []int               `json:"substitutes"`
}

func (a *app) reharmCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "reharm <root>",
		Short: "Reharmonization options for each diatonic chord",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chords := a.engine.DiatonicChords(a.engine.Scale(args[0], mode, false), mode, theory.BasicTensions)
			out := make([]reharmOutput, len(chords))
			for i, c := range chords {
				out[i] = reharmOutput{
					Chord:             c.Name,
					SecondaryDominant: c.SecondaryDominant,
					Substitutes:       progression.DiatonicSubstitutes(c.Degree, mode),
				}
				if c.Quality == "7" {
					sub, ii := progression.TritoneSubstitute(c.Root), progression.RelatedII(c.Root)
					out[i].TritoneSubstitute, out[i].RelatedII = &sub, &ii
				}
			}

			return a.print(cmd, out, func(w io.Writer) {
				for _, o := range out {
					line := o.Chord
					if o.SecondaryDominant != nil {
						line += "  V7: " + o.SecondaryDominant.String()
					}
					if o.TritoneSubstitute != nil {
						line += "  subV7: " + o.TritoneSubstitute.String() + "  ii: " + o.RelatedII.String()
					}
					fmt.Fprintln(w, line)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "Major", "Mode name")
	return cmd
}
