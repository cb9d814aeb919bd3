package main

import (
	"errors"
	"fmt"
	"os"

	"crm-dedupe/internal/config"
	"crm-dedupe/internal/logger"
	"crm-dedupe/internal/matching"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// exitDefiniteDuplicate is the exit status of `check --strict` when the
// candidate shares an email or phone number with a listed contact.
const exitDefiniteDuplicate = 2

var errDefiniteDuplicate = errors.New("definite duplicate found")

type rootOptions struct {
	rulesPath string
	threshold int
	noColor   bool
	logLevel  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Find duplicate contacts in YAML or JSON contact files",
		Long: `dedupe runs the contact duplicate matcher against a contacts file.

Contact files are YAML (.yaml, .yml) or JSON (.json) lists of
{id, name, email, phone} records.

Examples:
  # Check one prospective contact against a file
  dedupe check --contacts contacts.yaml --name "John Smyth" --email john@example.com

  # Fail with exit status 2 when the email or phone is already taken
  dedupe check --contacts contacts.json --name "Jane" --phone 555-123-4567 --strict

  # List every probable duplicate pair in a file
  dedupe scan --contacts contacts.yaml --threshold 80`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
			logger.InitWithWriter(config.LoggerConfig{
				Level:       opts.logLevel,
				Environment: "development",
			}, cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.rulesPath, "rules", "", "TOML file overriding the matching rules")
	flags.IntVar(&opts.threshold, "threshold", -1, "Minimum confidence (0-100) to report; defaults to the rules threshold")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level for diagnostics on stderr")

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newScanCmd(opts))

	return rootCmd
}

// rules resolves the matcher rules from the defaults, the rules file and
// the --threshold flag, in that order.
func (o *rootOptions) rules() (matching.Rules, error) {
	rules := matching.DefaultRules
	if o.rulesPath != "" {
		var err error
		rules, err = config.LoadRulesFile(o.rulesPath, rules)
		if err != nil {
			return matching.Rules{}, err
		}
	}
	if o.threshold >= 0 {
		rules = rules.WithThreshold(o.threshold)
		if err := rules.Validate(); err != nil {
			return matching.Rules{}, err
		}
	}
	return rules, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errDefiniteDuplicate) {
			os.Exit(exitDefiniteDuplicate)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
