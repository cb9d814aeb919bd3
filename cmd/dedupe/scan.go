package main

import (
	"fmt"
	"io"
	"strings"

	"crm-dedupe/internal/matching"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newScanCmd(root *rootOptions) *cobra.Command {
	var contactsPath string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List probable duplicate pairs within a contacts file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := root.rules()
			if err != nil {
				return err
			}

			contacts, err := loadContactsFile(contactsPath)
			if err != nil {
				return err
			}

			printPairs(cmd.OutOrStdout(), rules.FindDuplicatePairs(contacts), len(contacts))
			return nil
		},
	}

	cmd.Flags().StringVar(&contactsPath, "contacts", "", "YAML or JSON contacts file")
	_ = cmd.MarkFlagRequired("contacts")

	return cmd
}

func printPairs(out io.Writer, pairs []matching.DuplicatePair, scanned int) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	if len(pairs) == 0 {
		fmt.Fprintf(out, "%s No duplicates among %d contact(s)\n", green("✓"), scanned)
		return
	}

	fmt.Fprintf(out, "\n%s Found %d duplicate pair(s) among %d contact(s):\n\n", yellow("⚠"), len(pairs), scanned)
	for _, pair := range pairs {
		fmt.Fprintf(out, "%s %s  ~  %s %s\n",
			cyan(pair.Contact.ID), pair.Contact.Name,
			cyan(pair.Match.Contact.ID), pair.Match.Contact.Name)
		fmt.Fprintf(out, "  Match: %s (%d%%) on %s\n",
			pair.Match.MatchType, pair.Match.Confidence, strings.Join(pair.Match.MatchedFields, ", "))
	}
}
