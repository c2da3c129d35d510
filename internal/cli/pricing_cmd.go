package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/saymetristan/whaapy-ai/internal/pricing"
)

func newPricingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pricing",
		Short: "List token prices per model (USD per million tokens)",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tINPUT\tOUTPUT\tCACHED INPUT")
			for _, model := range pricing.SupportedModels() {
				p, _ := pricing.For(model)
				cached := "-"
				if p.CachedInput > 0 {
					cached = fmt.Sprintf("%.4g", p.CachedInput)
				}
				fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%s\n", model, p.Input, p.Output, cached)
			}
			w.Flush()
		},
	}
}
