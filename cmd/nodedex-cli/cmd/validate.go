package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nodedex/internal/application/validator"
	"nodedex/internal/domain"
)

var (
	validateConfig  string
	validateMode    string
	validateProfile string
	validateVersion float64
	validateMinimal bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <node-type>",
	Short: "Validate a node configuration",
	Long: `Validate a node configuration against the node's property schema.

The configuration is JSON, passed inline or read from a file with @path.
Validation reports errors, warnings, and suggestions; the configuration
is valid exactly when there are no errors.

Examples:
  nodedex-cli validate httpRequest --config '{"method":"GET","url":"https://example.com"}'
  nodedex-cli validate slack --config @message.json --profile strict
  nodedex-cli validate httpRequest --minimal`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := svc.Resolve(args[0])
		if err != nil {
			return err
		}

		raw := validateConfig
		if strings.HasPrefix(raw, "@") {
			data, err := os.ReadFile(strings.TrimPrefix(raw, "@"))
			if err != nil {
				return fmt.Errorf("failed to read config file: %w", err)
			}
			raw = string(data)
		}
		var params map[string]any
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		cfg := domain.ConfigFromAny(params)

		if validateMinimal {
			return printJSON(validator.New().ValidateMinimal(def.NodeType, cfg, def.Properties))
		}

		mode, err := domain.ParseMode(validateMode)
		if err != nil {
			return err
		}
		profile, err := domain.ParseProfile(validateProfile)
		if err != nil {
			return err
		}

		result := validator.New().Validate(validator.Request{
			NodeType:   def.NodeType,
			Version:    validateVersion,
			Config:     cfg,
			Properties: def.Properties,
			Mode:       mode,
			Profile:    profile,
		})
		return printJSON(result)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&validateConfig, "config", "c", "{}", "node configuration as JSON, or @file")
	validateCmd.Flags().StringVar(&validateMode, "mode", "full", "validation mode (minimal, operation, full)")
	validateCmd.Flags().StringVar(&validateProfile, "profile", "ai-friendly", "validation profile (minimal, runtime, ai-friendly, strict)")
	validateCmd.Flags().Float64Var(&validateVersion, "version", 0, "node type version (0 resolves from the config)")
	validateCmd.Flags().BoolVar(&validateMinimal, "minimal", false, "check required fields only")
}
