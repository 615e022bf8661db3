package main

import (
	"fmt"
	"os"

	"github.com/richxcame/kyc-nova/internal/extraction"
	"github.com/spf13/cobra"
)

// ExtractOutput is what extract prints
type ExtractOutput struct {
	DocumentType extraction.DocumentType `json:"documentType"`
	Fields       extraction.Fields       `json:"fields"`
	FieldCount   int                     `json:"fieldCount"`
	RiskScore    float64                 `json:"riskScore"`
}

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract identity fields from an OCR text file",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtractCmd,
	}

	cmd.Flags().Float64("confidence", 95, "Authenticity confidence used for the document risk score")

	return cmd
}

func runExtractCmd(cmd *cobra.Command, args []string) error {
	confidence, err := cmd.Flags().GetFloat64("confidence")
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	text := string(data)

	fields := extraction.Extract(text)
	return printJSON(cmd, ExtractOutput{
		DocumentType: extraction.ClassifyDocument(text),
		Fields:       fields,
		FieldCount:   fields.Count(),
		RiskScore:    extraction.DocumentRisk(fields, confidence),
	})
}
