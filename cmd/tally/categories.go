package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ewisehart/tally/internal/categorize"
	"github.com/ewisehart/tally/internal/cli"
	"github.com/ewisehart/tally/internal/model"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the category taxonomy and keyword rules",
		Long:  `List the fixed categories and the keyword rules that assign them, in evaluation order.`,
		RunE:  runCategories,
	}
}

func runCategories(_ *cobra.Command, _ []string) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

	fmt.Println(cli.FormatTitle("Categories"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n",
		headerStyle.Render("Category"),
		headerStyle.Render("Kind"))
	fmt.Fprintf(w, "%s\t%s\n",
		strings.Repeat("-", 22),
		strings.Repeat("-", 8))
	for _, cat := range model.AllCategories() {
		fmt.Fprintf(w, "%s\t%s\n", string(cat), string(cat.Type()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.FormatTitle("Keyword rules"))

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n",
		headerStyle.Render("Keyword"),
		headerStyle.Render("Category"))
	fmt.Fprintf(w, "%s\t%s\n",
		strings.Repeat("-", 16),
		strings.Repeat("-", 22))
	for _, rule := range categorize.Rules() {
		fmt.Fprintf(w, "%s\t%s\n", rule.Keyword, string(rule.Category))
	}
	return w.Flush()
}
