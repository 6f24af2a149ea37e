package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaflow/internal/assessment"
	"github.com/abhisek/linguaflow/internal/exercise"
)

// assessOutput adds the display verdict to the raw result.
type assessOutput struct {
	*assessment.Result
	Band     assessment.Band `json:"band"`
	Headline string          `json:"headline"`
}

var assessCmd = &cobra.Command{
	Use:   "assess <exercise.json> [text]",
	Short: "Assess a response against an exercise file",
	Long: `Assess a response against an exercise previously written by "linguaflow exercise".
The response is read from the second argument, or from stdin when omitted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		levelFlag, _ := cmd.Flags().GetString("level")
		level, err := exercise.ParseLevel(levelFlag)
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read exercise: %w", err)
		}
		var ex exercise.Exercise
		if err := json.Unmarshal(raw, &ex); err != nil {
			return fmt.Errorf("parse exercise %s: %w", args[0], err)
		}

		var text string
		if len(args) == 2 {
			text = args[1]
		} else {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read response: %w", err)
			}
			text = string(b)
		}
		text = strings.TrimSpace(text)

		if n, want := exercise.WordCount(text), ex.MinWords(); n < want {
			fmt.Fprintf(os.Stderr, "Note: %d words, the app asks for at least %d.\n", n, want)
		}

		st, settings, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		_, eval := newServices(newProvider(cmd.Context(), settings, st.EventRepo()), settings)
		res, err := eval.Assess(cmd.Context(), text, ex, level)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(assessOutput{Result: res, Band: res.Band(), Headline: res.Headline()})
	},
}

func init() {
	assessCmd.Flags().StringP("level", "l", "intermediate", "Proficiency level the response is graded at")
}
