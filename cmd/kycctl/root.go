package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for kycctl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kycctl",
		Short: "Offline tools for the KYC verification pipeline",
		Long: `kycctl runs the KYC scoring stages locally, without AWS or the API server.
It extracts identity fields from OCR text, aggregates trust scores,
classifies liveness frames and checks scoring policy files.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewScoreCmd())
	cmd.AddCommand(NewLivenessCmd())
	cmd.AddCommand(NewPolicyCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
