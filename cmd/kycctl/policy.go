package main

import (
	"fmt"

	"github.com/richxcame/kyc-nova/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewPolicyCmd creates the policy command group.
func NewPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect scoring policies",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Check a scoring policy file and print the effective policy",
		Args:  cobra.ExactArgs(1),
		RunE:  runPolicyValidateCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "default",
		Short: "Print the built-in scoring policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printPolicy(cmd, config.DefaultScoringPolicy())
		},
	})

	return cmd
}

func runPolicyValidateCmd(cmd *cobra.Command, args []string) error {
	policy, err := config.LoadPolicy(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: valid\n", args[0])
	return printPolicy(cmd, policy)
}

// printPolicy writes p in the same YAML layout LoadPolicy reads
func printPolicy(cmd *cobra.Command, p config.ScoringPolicy) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}
