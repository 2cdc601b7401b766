package cli

import (
	"github.com/spf13/cobra"

	"interest-calc/console"
)

func newSimpleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "simple",
		Short: "Calculate simple interest interactively",
		Long: `Prompts for the principal, the annual rate as a decimal fraction and the
period in years, re-prompting until each value is valid, then prints the
simple interest and the total amount.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSimple(cmd)
		},
	}
}

func (a *app) runSimple(cmd *cobra.Command) error {
	reader, err := console.NewLineReader(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	session := &console.Session{
		Reader:      reader,
		Out:         cmd.OutOrStdout(),
		MaxAttempts: a.cfg.MaxAttempts,
		Logger:      a.logger,
	}
	_, err = session.Run(cmd.Context())
	return err
}
