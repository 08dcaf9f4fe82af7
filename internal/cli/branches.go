package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adhithya-electronics/storefront-client/internal/catalog/domain"
)

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "Browse store branches",
}

var branchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List branches",
	RunE:  runBranchesList,
}

var branchesShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a branch with its reviews",
	Args:  cobra.ExactArgs(1),
	RunE:  runBranchesShow,
}

var branchesReviewCmd = &cobra.Command{
	Use:   "review <slug>",
	Short: "Submit a review for a branch",
	Args:  cobra.ExactArgs(1),
	RunE:  runBranchesReview,
}

func init() {
	rootCmd.AddCommand(branchesCmd)
	branchesCmd.AddCommand(branchesListCmd, branchesShowCmd, branchesReviewCmd)

	branchesReviewCmd.Flags().Int("rating", 5, "rating from 1 to 5")
	branchesReviewCmd.Flags().String("title", "", "review title")
	branchesReviewCmd.Flags().String("body", "", "review text")
}

func runBranchesList(cmd *cobra.Command, args []string) error {
	branches, err := app.Catalog.ListBranches(cmd.Context())
	if err != nil {
		return err
	}

	if len(branches) == 0 {
		app.Printer.Info("no branches found")
		return nil
	}

	table := NewTable([]string{"Name", "Area", "Phone", "Rating", "Slug"})
	for _, b := range branches {
		table.AddRow([]string{
			b.Name,
			b.Area,
			b.Phone,
			fmt.Sprintf("%.1f (%d)", b.AvgRating, b.ReviewCount),
			b.Slug,
		})
	}
	table.Render()
	return nil
}

func runBranchesShow(cmd *cobra.Command, args []string) error {
	branch, err := app.Catalog.GetBranch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	app.Printer.Header(branch.Name)
	app.Printer.Info("area: %s", branch.Area)
	app.Printer.Info("address: %s", branch.Address)
	app.Printer.Info("phone: %s  email: %s", branch.Phone, branch.Email)
	app.Printer.Info("hours: %s - %s (%s)", branch.OpeningTime, branch.ClosingTime, branch.WorkingDays)
	app.Printer.Info("rating: %.1f from %d reviews", branch.AvgRating, branch.ReviewCount)
	if desc := strings.TrimSpace(branch.Description); desc != "" {
		app.Printer.Info("\n%s", desc)
	}

	if len(branch.Reviews) > 0 {
		app.Printer.Header("Reviews")
		for _, r := range branch.Reviews {
			author := strings.TrimSpace(r.User.FirstName + " " + r.User.LastName)
			if author == "" {
				author = "anonymous"
			}
			app.Printer.Info("[%d/5] %s by %s", r.Rating, r.Title, author)
			if r.Body != "" {
				app.Printer.Info("  %s", r.Body)
			}
			if r.AdminReply != "" {
				app.Printer.Info("  reply: %s", r.AdminReply)
			}
		}
	}
	return nil
}

func runBranchesReview(cmd *cobra.Command, args []string) error {
	if !app.Session.IsAuthenticated() {
		return errors.New("please login to submit a review")
	}

	rating, _ := cmd.Flags().GetInt("rating")
	title, _ := cmd.Flags().GetString("title")
	body, _ := cmd.Flags().GetString("body")

	review := domain.Review{Rating: rating, Title: title, Body: body}
	if err := app.Catalog.AddReview(cmd.Context(), args[0], review); err != nil {
		return fmt.Errorf("submit review: %w", err)
	}

	app.Printer.Success("review submitted")
	return nil
}
