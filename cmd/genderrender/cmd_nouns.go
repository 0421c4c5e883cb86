package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/phseiff/gender-render/pkg/genderrender"
	"github.com/phseiff/gender-render/pkg/genderrender/nouns"
)

var lookupGender string

var nounsCmd = &cobra.Command{
	Use:   "nouns",
	Short: "Inspect and convert noun datasets",
}

var nounsLookupCmd = &cobra.Command{
	Use:   "lookup [word]",
	Short: "Show the gendered versions of a noun",
	Long: `Looks a noun up in the dataset selected with --nouns (or the built-in one).

Examples:
  genderrender nouns lookup actor
  genderrender nouns lookup police_officer --gender female`,
	Args: cobra.ExactArgs(1),
	RunE: runNounsLookup,
}

var nounsConvertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Convert a noun dataset between JSON, xz and SQLite",
	Long: `Reads a noun dataset and writes it in the format given by the output
extension: .db or .sqlite for SQLite, .xz for xz-compressed JSON, anything
else for JSON.`,
	Args: cobra.ExactArgs(2),
	RunE: runNounsConvert,
}

func init() {
	nounsLookupCmd.Flags().StringVar(&lookupGender, "gender", "", "Print only the version for this gender (female, male or neutral)")

	nounsCmd.AddCommand(nounsLookupCmd)
	nounsCmd.AddCommand(nounsConvertCmd)
}

func runNounsLookup(cmd *cobra.Command, args []string) error {
	lookup, err := engine.Nouns()
	if err != nil {
		return err
	}
	entry, ok := lookup.Lookup(args[0])
	if !ok {
		return fmt.Errorf("%q is not in the noun dataset", args[0])
	}

	w := cmd.OutOrStdout()
	if lookupGender != "" {
		g, err := nouns.ParseGender(lookupGender)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, entry.Inflect(g))
		return nil
	}

	fmt.Fprintf(w, "%s (%s)\n", entry.Word, entry.Gender)
	genders := make([]string, 0, len(entry.Forms))
	for g := range entry.Forms {
		genders = append(genders, string(g))
	}
	sort.Strings(genders)
	for _, g := range genders {
		fmt.Fprintf(w, "  %s: %s\n", g, entry.Forms[nouns.Gender(g)])
	}
	for _, warning := range entry.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
	return nil
}

func runNounsConvert(cmd *cobra.Command, args []string) error {
	d, err := nouns.LoadFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid noun dataset: %w", err)
	}
	if err := nouns.SaveFile(cmd.Context(), args[1], d); err != nil {
		return err
	}
	logger.WithFields(genderrender.Fields{"from": args[0], "to": args[1], "words": d.Len()}).Info("Converted noun dataset")
	return nil
}
