package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/harmony-api/internal/playback"
	"github.com/Conceptual-Machines/harmony-api/internal/voicing"
)

func (a *app) midiCmd() *cobra.Command {
	var (
		templateID string
		root       string
		mode       string
		kind       string
		opts       playback.Options
		tempo      float64
		out        string
	)
	cmd := &cobra.Command{
		Use:   "midi [chord...]",
		Short: "Render a voiced progression to a Standard MIDI File",
		Long:  "Render chord symbols, or a template with --progression, to a MIDI file. --out - writes to stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			symbols := args
			refs := chordRefs(args)
			if templateID != "" {
				tmpl, err := a.progressions.Template(templateID)
				if err != nil {
					return fmt.Errorf("%w: %s", err, templateID)
				}
				chords := a.progressions.GenericChords(root, mode, tmpl)
				symbols = chordNames(chords)
				refs = make([]voicing.ChordRef, len(chords))
				for i, c := range chords {
					refs[i] = voicing.ChordRef{Root: c.Root, Quality: c.Quality}
				}
			}
			if len(refs) == 0 {
				return fmt.Errorf("give chord symbols or --progression")
			}

			k, err := voicing.ParseKind(kind)
			if err != nil {
				return err
			}
			voicings, err := voicing.Sequence(refs, k)
			if err != nil {
				return err
			}
			if a.defaults.EnforceIntervalLimits {
				for i := range voicings {
					voicings[i] = voicing.EnforceIntervalLimits(voicings[i])
				}
			}
			rendering, err := playback.ProgressionEvents(symbols, voicings, opts)
			if err != nil {
				return err
			}

			if tempo <= 0 {
				tempo = a.defaults.Tempo
			}
			if err := playback.ValidateTempo(tempo); err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if err := playback.WriteSMF(w, rendering.Notes, tempo, a.defaults.TicksPerQuarter); err != nil {
				return err
			}
			if out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d notes for %d chords to %s\n", len(rendering.Notes), len(symbols), out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&templateID, "progression", "p", "", "Progression template id")
	cmd.Flags().StringVarP(&root, "root", "r", "C", "Key root for --progression")
	cmd.Flags().StringVarP(&mode, "mode", "m", "Major", "Mode for --progression")
	cmd.Flags().StringVar(&kind, "voicing", string(voicing.KindRootlessA), "Shape of the first chord")
	cmd.Flags().StringVar(&opts.Rhythm, "rhythm", playback.DefaultRhythm, "Rhythm template")
	cmd.Flags().Float64Var(&opts.BeatsPerChord, "beats", playback.DefaultBeatsPerChord, "Beats per chord")
	cmd.Flags().IntVar(&opts.Velocity, "velocity", playback.DefaultVelocity, "Base velocity")
	cmd.Flags().Float64Var(&tempo, "tempo", 0, "Tempo in BPM (default from MIDI_TEMPO)")
	cmd.Flags().StringVarP(&out, "out", "o", "progression.mid", "Output file, - for stdout")
	return cmd
}
