package main

import (
	"github.com/iwvelando/loan-calculator/internal/report"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/output"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type scheduleFlags struct {
	principal    string
	interestRate string
	years        string
	language     string
	currency     string
	outputFormat string
}

func newScheduleCmd(root *rootOptions) *cobra.Command {
	flags := &scheduleFlags{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute and print an amortization schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := root.loadConfiguration(cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			// CLI flags take precedence over config
			set := func(name string, dst *string, value string) {
				if cmd.Flags().Changed(name) {
					*dst = value
				}
			}
			set("principal", &conf.Loan.Principal, flags.principal)
			set("rate", &conf.Loan.InterestRate, flags.interestRate)
			set("years", &conf.Loan.Years, flags.years)
			set("language", &conf.Display.Language, flags.language)
			set("currency", &conf.Display.Currency, flags.currency)
			set("output-format", &conf.Output.Format, flags.outputFormat)

			logger, err := initializeLogger(conf.Logging, root.logLevel)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
				return err
			}

			for _, warning := range conf.ValidateConfiguration() {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main.schedule"),
				)
			}

			rep, err := report.Calculate(logger, format.NewLocaleFormatter(), conf.Request())
			if err != nil {
				logger.Error("failed to compute schedule",
					zap.String("op", "main.schedule"),
					zap.Error(err),
				)
				return err
			}

			return output.Write(cmd.OutOrStdout(), conf.Output.Format, rep)
		},
	}

	cmd.Flags().StringVar(&flags.principal, "principal", "", "loan amount")
	cmd.Flags().StringVar(&flags.interestRate, "rate", "", "annual interest rate in percent")
	cmd.Flags().StringVar(&flags.years, "years", "", "loan term in whole years")
	cmd.Flags().StringVar(&flags.language, "language", "", "number formatting language (hu-HU, en-US, en-GB, de-DE)")
	cmd.Flags().StringVar(&flags.currency, "currency", "", "currency code (HUF, USD, GBP, EUR)")
	cmd.Flags().StringVar(&flags.outputFormat, "output-format", "", "type of output override: pretty, csv, html, json, yaml")
	return cmd
}
