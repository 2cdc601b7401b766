package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"interest-calc/console"
	"interest-calc/service"
)

type compoundOptions struct {
	principal float64
	rate      float64
	years     float64
	frequency string
	compare   bool
}

func newCompoundCommand() *cobra.Command {
	opts := &compoundOptions{}

	cmd := &cobra.Command{
		Use:   "compound",
		Short: "Calculate the future value under compound interest",
		Long: `Computes A = P * (1 + r/n)^(n*t) for the given principal P, annual rate r
(as a decimal), time t in years and compounding frequency n.

Without --principal, --rate and --time it prints a worked example.`,
		Example: `  interest-calc compound --principal 1000 --rate 0.05 --time 3 --frequency monthly
  interest-calc compound --principal 1000 --rate 0.05 --time 3 --compare`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !cmd.Flags().Changed("principal") {
				return runCompoundExample(out)
			}
			if opts.compare {
				return runCompoundCompare(out, opts)
			}
			return runCompound(out, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.principal, "principal", 0, "Initial principal")
	cmd.Flags().Float64Var(&opts.rate, "rate", 0, "Annual interest rate as a decimal (0.05 = 5%)")
	cmd.Flags().Float64Var(&opts.years, "time", 0, "Time in years (negative discounts)")
	cmd.Flags().StringVar(&opts.frequency, "frequency", "annually", "Compounding frequency: a name or times per year")
	cmd.Flags().BoolVar(&opts.compare, "compare", false, "Compare all named compounding frequencies")
	cmd.MarkFlagsRequiredTogether("principal", "rate", "time")
	cmd.MarkFlagsMutuallyExclusive("frequency", "compare")

	_ = cmd.RegisterFlagCompletionFunc("frequency", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(service.Frequencies))
		for _, f := range service.Frequencies {
			names = append(names, f.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCompound(out io.Writer, opts *compoundOptions) error {
	n, err := service.ParseFrequency(opts.frequency)
	if err != nil {
		return err
	}
	fv, err := service.CompoundInterest(opts.principal, opts.rate, opts.years, n)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Future value compounded %s: $%s\n", service.FrequencyName(n), console.Money(fv))
	return err
}

func runCompoundCompare(out io.Writer, opts *compoundOptions) error {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Frequency", "Periods/Year", "Future Value", "Interest"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	for _, f := range service.Frequencies {
		fv, err := service.CompoundInterest(opts.principal, opts.rate, opts.years, f.PerYear)
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{f.Name, f.PerYear, "$" + console.Money(fv), "$" + console.Money(fv-opts.principal)})
	}

	t.Render()
	return nil
}

// runCompoundExample prints the future value of 1000 at 5% over five years
// compounded annually and monthly, then shows how bad input is reported.
func runCompoundExample(out io.Writer) error {
	for _, n := range []int{service.Annually, service.Monthly} {
		fv, err := service.CompoundInterest(1000, 0.05, 5, n)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "Future value compounded %s: $%s\n", service.FrequencyName(n), console.Money(fv)); err != nil {
			return err
		}
	}

	for _, args := range [][4]any{
		{1000, -0.02, 2, 4},
		{"1000", 0.05, 3, 1},
	} {
		_, err := service.CompoundInterestValues(args[0], args[1], args[2], args[3])
		var ce *service.CalcError
		if errors.As(err, &ce) {
			if _, werr := fmt.Fprintf(out, "Error: %s\n", ce.Message); werr != nil {
				return werr
			}
		}
	}
	return nil
}
