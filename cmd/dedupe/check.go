package main

import (
	"fmt"
	"io"
	"strings"

	"crm-dedupe/internal/logger"
	"crm-dedupe/internal/matching"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type checkOptions struct {
	contactsPath string
	name         string
	email        string
	phone        string
	strict       bool
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check one prospective contact against a contacts file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := root.rules()
			if err != nil {
				return err
			}

			contacts, err := loadContactsFile(opts.contactsPath)
			if err != nil {
				return err
			}

			candidate := matching.Candidate{
				Name:  opts.name,
				Email: opts.email,
			}
			if cmd.Flags().Changed("phone") {
				candidate.Phone = &opts.phone
			}

			logger.Debug().
				Int("contacts", len(contacts)).
				Int("threshold", rules.Threshold).
				Msg("checking candidate")

			matches := rules.FindDuplicates(candidate, contacts)
			definite := matching.IsDefiniteDuplicate(candidate, contacts)
			printMatches(cmd.OutOrStdout(), matches, definite)

			if opts.strict && definite != nil {
				return errDefiniteDuplicate
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.contactsPath, "contacts", "", "YAML or JSON contacts file")
	flags.StringVar(&opts.name, "name", "", "Name of the prospective contact")
	flags.StringVar(&opts.email, "email", "", "Email of the prospective contact")
	flags.StringVar(&opts.phone, "phone", "", "Phone number of the prospective contact")
	flags.BoolVar(&opts.strict, "strict", false, "Exit with status 2 when the email or phone already exists")
	_ = cmd.MarkFlagRequired("contacts")

	return cmd
}

func printMatches(out io.Writer, matches []matching.DuplicateMatch, definite *matching.Contact) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	if len(matches) == 0 {
		fmt.Fprintf(out, "%s No duplicates found\n", green("✓"))
		return
	}

	fmt.Fprintf(out, "\n%s Found %d possible duplicate(s):\n\n", yellow("⚠"), len(matches))
	for _, match := range matches {
		fmt.Fprintf(out, "%s: %s\n", cyan(match.Contact.ID), match.Contact.Name)
		fmt.Fprintf(out, "  Match: %s (%d%%)\n", match.MatchType, match.Confidence)
		fmt.Fprintf(out, "  Fields: %s\n", strings.Join(match.MatchedFields, ", "))
		fmt.Fprintln(out)
	}

	warning := matching.DuplicateWarning(matches)
	if definite != nil {
		fmt.Fprintf(out, "%s %s\n", red("✗"), warning)
		return
	}
	fmt.Fprintf(out, "%s %s\n", yellow("⚠"), warning)
}
