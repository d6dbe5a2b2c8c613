package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calma-app/calma/internal/app/checkout"
	"github.com/calma-app/calma/internal/app/wellness"
	"github.com/calma-app/calma/internal/domain"
	"github.com/calma-app/calma/internal/infra/catalog"
)

// ─── Offline content commands ───────────────────────────────────────────────
// These run against the built-in catalog without a server.

func init() {
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(pixCmd)
	rootCmd.AddCommand(priceCmd)
	pixCmd.AddCommand(pixValidateCmd)

	recommendCmd.Flags().Bool("premium", false, "Include premium exercises")
}

// ─── recommend ──────────────────────────────────────────────────────────────

var recommendCmd = &cobra.Command{
	Use:   "recommend MOOD",
	Short: "Recommend exercises for a mood",
	Long: `Print up to three exercises for MOOD, one of terrible, bad, neutral,
good or excellent (pt-BR labels are accepted too).`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	mood, err := domain.ParseMood(args[0])
	if err != nil {
		return err
	}
	premium, _ := cmd.Flags().GetBool("premium")

	out := cmd.OutOrStdout()
	style := mood.Style()
	fmt.Fprintf(out, "%s %s\n", style.Emoji, style.Label)
	for _, ex := range wellness.Recommend(catalog.Exercises, mood, premium) {
		fmt.Fprintf(out, "  • [%s] %s (%d min)%s\n", ex.ID, ex.Title, ex.DurationMin, premiumTag(ex.Premium))
	}
	return nil
}

func premiumTag(premium bool) string {
	if premium {
		return " ✨ premium"
	}
	return ""
}

// ─── catalog ────────────────────────────────────────────────────────────────

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List exercises and premium activities",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Exercises (%d):\n", len(catalog.Exercises))
		for _, ex := range catalog.Exercises {
			moods := make([]string, len(ex.TargetMoods))
			for i, m := range ex.TargetMoods {
				moods[i] = string(m)
			}
			fmt.Fprintf(out, "  • [%s] %-28s %-12s %s%s\n",
				ex.ID, ex.Title, ex.Category, strings.Join(moods, ","), premiumTag(ex.Premium))
		}
		fmt.Fprintf(out, "\nPremium activities (%d):\n", len(catalog.Activities))
		for _, a := range catalog.Activities {
			fmt.Fprintf(out, "  • %-12s %-28s %3d pts\n", a.ID, a.Title, a.Points)
		}
	},
}

// ─── pix ────────────────────────────────────────────────────────────────────

var pixCmd = &cobra.Command{
	Use:   "pix",
	Short: "PIX key utilities",
}

var pixValidateCmd = &cobra.Command{
	Use:   "validate KEY",
	Short: "Check whether KEY is a well-formed PIX key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !domain.ValidatePixKey(args[0]) {
			return fmt.Errorf("%w: %q", domain.ErrInvalidPixKey, args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is a valid PIX key\n", args[0])
		return nil
	},
}

// ─── price ──────────────────────────────────────────────────────────────────

var priceCmd = &cobra.Command{
	Use:   "price PLAN",
	Short: "Show the price breakdown of a plan",
	Long:  `Show the price, platform fee and net amount of PLAN (monthly or annual).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := domain.ParsePlan(args[0])
		if err != nil {
			return err
		}
		pct := checkout.DefaultPlatformFeePct
		amount := plan.Price()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s plan\n", plan.Label())
		fmt.Fprintf(out, "  Price:        %s\n", checkout.FormatBRL(amount))
		fmt.Fprintf(out, "  Platform fee: %s (%d%%)\n", checkout.FormatBRL(checkout.PlatformFee(amount, pct)), pct)
		fmt.Fprintf(out, "  Net:          %s\n", checkout.FormatBRL(checkout.NetAmount(amount, pct)))
		return nil
	},
}
