package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaflow/internal/audio"
	"github.com/abhisek/linguaflow/internal/exercise"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Generate one exercise and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		levelFlag, _ := cmd.Flags().GetString("level")
		modeFlag, _ := cmd.Flags().GetString("mode")
		wavPath, _ := cmd.Flags().GetString("wav")

		level, err := exercise.ParseLevel(levelFlag)
		if err != nil {
			return err
		}
		mode, err := exercise.ParseMode(modeFlag)
		if err != nil {
			return err
		}

		st, settings, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		gen, _ := newServices(newProvider(cmd.Context(), settings, st.EventRepo()), settings)
		ex := gen.Generate(cmd.Context(), level, mode)

		if ex.HasAudio() {
			if wavPath != "" {
				if err := os.WriteFile(wavPath, audio.EncodeWAV(ex.AudioData, audio.SampleRate), 0o644); err != nil {
					return fmt.Errorf("write wav: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Audio written to %s (%s)\n", wavPath, audio.Duration(ex.AudioData, audio.SampleRate))
			}
			ex.AudioData = nil
		} else if wavPath != "" {
			fmt.Fprintln(os.Stderr, "Exercise has no audio; --wav ignored.")
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(ex)
	},
}

func init() {
	exerciseCmd.Flags().StringP("level", "l", "intermediate", "Proficiency level: beginner, intermediate, advanced")
	exerciseCmd.Flags().StringP("mode", "m", "grammar", "Practice mode: grammar, vocabulary, cloze, sentence, dictation, free-write")
	exerciseCmd.Flags().String("wav", "", "Write dictation audio to this WAV file")
}
