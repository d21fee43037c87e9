package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/harmony-api/internal/theory"
	"github.com/Conceptual-Machines/harmony-api/internal/voicing"
)

func (a *app) voicingCmd() *cobra.Command {
	var (
		kind   string
		octave int
		limits bool
	)
	cmd := &cobra.Command{
		Use:   "voicing <root> [quality]",
		Short: "Voice a chord for piano",
		Long:  "Voice a chord in one shape, or in every standard shape when --type is omitted.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, quality := args[0], theory.DefaultQuality
			if len(args) == 2 {
				quality = args[1]
			}

			if kind == "" {
				set := voicing.All(root, quality)
				return a.print(cmd, set, func(w io.Writer) {
					fmt.Fprintf(w, "shell      %s\n", join(voicing.NoteNames(set.Shell)))
					fmt.Fprintf(w, "rootlessA  %s\n", join(voicing.NoteNames(set.RootlessA)))
					fmt.Fprintf(w, "rootlessB  %s\n", join(voicing.NoteNames(set.RootlessB)))
					fmt.Fprintf(w, "drop2      %s\n", join(voicing.NoteNames(set.Drop2)))
					fmt.Fprintf(w, "quartal    %s\n", join(voicing.NoteNames(set.Quartal)))
				})
			}

			k, err := voicing.ParseKind(kind)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("octave") {
				octave = voicing.DefaultOctaveFor(k)
			}
			v, err := voicing.Generate(k, root, quality, octave)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limits") {
				limits = a.defaults.EnforceIntervalLimits
			}
			if limits {
				v = voicing.EnforceIntervalLimits(v)
			}

			return a.print(cmd, v, func(w io.Writer) {
				fmt.Fprintln(w, join(voicing.NoteNames(v)))
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "", "Shape: close, shell, rootlessA, rootlessB, drop2 or quartal")
	cmd.Flags().IntVarP(&octave, "octave", "o", voicing.DefaultOctave, "Register of the lowest tone")
	cmd.Flags().BoolVar(&limits, "limits", true, "Raise notes that break low interval limits")
	return cmd
}

// chordRefs parses chord symbols such as "Dm7" into voicing references.
func chordRefs(symbols []string) []voicing.ChordRef {
	refs := make([]voicing.ChordRef, len(symbols))
	for i, s := range symbols {
		sym := theory.ParseChordSymbol(s)
		refs[i] = voicing.ChordRef{Root: sym.Root, Quality: sym.Quality}
	}
	return refs
}

func (a *app) leadCmd() *cobra.Command {
	var first string
	cmd := &cobra.Command{
		Use:   "lead <chord>...",
		Short: "Voice-lead a chord sequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := voicing.ParseKind(first)
			if err != nil {
				return err
			}
			voicings, err := voicing.Sequence(chordRefs(args), k)
			if err != nil {
				return err
			}

			return a.print(cmd, voicings, func(w io.Writer) {
				for i, v := range voicings {
					move := 0
					if i > 0 {
						move = voicing.Movement(voicings[i-1], v)
					}
					fmt.Fprintf(w, "%-10s %-24s %d\n", args[i], join(voicing.NoteNames(v)), move)
				}
			})
		},
	}
	cmd.Flags().StringVar(&first, "first", string(voicing.KindRootlessA), "Shape of the first chord")
	return cmd
}
