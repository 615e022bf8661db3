package main

import (
	"github.com/richxcame/kyc-nova/internal/trust"
	"github.com/richxcame/kyc-nova/pkg/config"
	"github.com/spf13/cobra"
)

// NewScoreCmd creates the score command.
func NewScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Aggregate stage scores into a trust score",
		Long: `Aggregate document, biometric and behavioral scores with the scoring policy.
Scores left unset fall back to the policy defaults. When --behavior is unset
and any behavior signal flag is given, the behavior score is derived from the signals.`,
		Args: cobra.NoArgs,
		RunE: runScoreCmd,
	}

	cmd.Flags().Float64("document", 0, "Document authenticity score (0-100)")
	cmd.Flags().Float64("biometric", 0, "Biometric match score (0-100)")
	cmd.Flags().Float64("behavior", 0, "Behavioral score (0-100)")
	cmd.Flags().Bool("mouse-natural", false, "Mouse movements looked natural")
	cmd.Flags().Bool("typing-human", false, "Typing cadence looked human")
	cmd.Flags().Float64("session-seconds", 0, "Session length in seconds")
	cmd.Flags().Bool("name-extracted", true, "A name was extracted from the document")
	cmd.Flags().Bool("face-matched", true, "The live face matched the document")
	cmd.Flags().StringP("policy", "p", "", "Scoring policy YAML file")

	return cmd
}

func runScoreCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	policyFile, err := flags.GetString("policy")
	if err != nil {
		return err
	}
	policy, err := config.LoadPolicy(policyFile)
	if err != nil {
		return err
	}

	var in trust.Input
	for name, target := range map[string]**float64{
		"document":  &in.DocumentScore,
		"biometric": &in.BiometricScore,
		"behavior":  &in.BehaviorScore,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetFloat64(name)
		if err != nil {
			return err
		}
		*target = trust.Score(v)
	}

	if flags.Changed("mouse-natural") || flags.Changed("typing-human") || flags.Changed("session-seconds") {
		natural, _ := flags.GetBool("mouse-natural")
		human, _ := flags.GetBool("typing-human")
		seconds, _ := flags.GetFloat64("session-seconds")
		in.Behavior = &trust.BehaviorSignals{
			MouseMovements: &trust.MouseSignal{Natural: natural},
			TypingCadence:  &trust.TypingSignal{Human: human},
			SessionSeconds: seconds,
		}
	}

	if flags.Changed("name-extracted") || flags.Changed("face-matched") {
		named, _ := flags.GetBool("name-extracted")
		matched, _ := flags.GetBool("face-matched")
		in.Consistency = &trust.Consistency{NameExtracted: named, FaceMatched: matched}
	}

	return printJSON(cmd, trust.NewAggregator(policy).Aggregate(in))
}
