package main

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"github.com/richxcame/kyc-nova/internal/liveness"
	"github.com/richxcame/kyc-nova/internal/scoring"
	"github.com/spf13/cobra"
)

// synthetic frames carry a preset label and skip classification
const syntheticFrameData = "data:image/jpeg;base64,c3ludGhldGlj"

// NewLivenessCmd creates the liveness command.
func NewLivenessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness [frame files...]",
		Short: "Classify capture frames and print the liveness verdict",
		Long: `Classify image files as liveness frames and print the verdict.
Synthetic frames with a fixed label can be added with --normal, --photo and --blocked.`,
		RunE: runLivenessCmd,
	}

	cmd.Flags().Int("normal", 0, "Number of synthetic normal frames")
	cmd.Flags().Int("photo", 0, "Number of synthetic photo frames")
	cmd.Flags().Int("blocked", 0, "Number of synthetic blocked frames")
	cmd.Flags().Uint64("seed", 0, "Seed for the synthetic scores (0 seeds from the clock)")
	cmd.Flags().Bool("fallback", false, "Report the fallback verdict without classifying frames")

	return cmd
}

func runLivenessCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	seed, err := flags.GetUint64("seed")
	if err != nil {
		return err
	}
	fallback, err := flags.GetBool("fallback")
	if err != nil {
		return err
	}

	scorer := scoring.NewRandom(seed)

	files := make([]liveness.Frame, 0, len(args))
	for _, path := range args {
		frame, err := frameFromFile(path)
		if err != nil {
			return err
		}
		files = append(files, frame)
	}
	frames := liveness.NewFrameClassifier(scorer).ClassifyAll(files)

	for _, s := range []liveness.Scenario{liveness.ScenarioNormal, liveness.ScenarioPhoto, liveness.ScenarioBlocked} {
		n, err := flags.GetInt(string(s))
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("--%s must not be negative", s)
		}
		for i := 0; i < n; i++ {
			frames = append(frames, liveness.Frame{Data: syntheticFrameData, Scenario: s})
		}
	}

	analyzer := liveness.NewAnalyzer(scorer, !fallback)
	return printJSON(cmd, analyzer.Verdict(frames))
}

// frameFromFile encodes an image file as a data URL frame
func frameFromFile(path string) (liveness.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return liveness.Frame{}, fmt.Errorf("failed to read frame %s: %w", path, err)
	}
	encoded := "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
	return liveness.Frame{Data: encoded}, nil
}
