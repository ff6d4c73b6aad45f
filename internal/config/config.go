// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/loan-calculator/internal/report"
	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for loan-calculator.
type Configuration struct {
	Loan    LoanConfig    `yaml:"loan,omitempty"`
	Display DisplayConfig `yaml:"display,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LoanConfig holds the loan inputs as text, the same way they are typed into
// the calculator form.
type LoanConfig struct {
	Principal    string `yaml:"principal,omitempty"`
	InterestRate string `yaml:"interestRate,omitempty"` // annual, percent
	Years        string `yaml:"years,omitempty"`
}

// DisplayConfig selects the number formatting.
type DisplayConfig struct {
	Language string `yaml:"language,omitempty"` // hu-HU, en-US, en-GB, de-DE
	Currency string `yaml:"currency,omitempty"` // HUF, USD, GBP, EUR
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, html, json, yaml
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults make every key known to viper so environment overrides apply
	// even when the file omits the key.
	v.SetDefault("loan.principal", constants.DefaultPrincipal)
	v.SetDefault("loan.interestRate", constants.DefaultInterestRate)
	v.SetDefault("loan.years", constants.DefaultTermYears)
	v.SetDefault("display.language", constants.DefaultLanguage)
	v.SetDefault("display.currency", constants.DefaultCurrency)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

// DefaultConfiguration returns the defaults with environment overrides
// applied, for when no configuration file is present.
func DefaultConfiguration() (*Configuration, error) {
	return decode(newViper())
}

// Request converts the configuration into a calculator request.
func (c *Configuration) Request() report.Request {
	return report.Request{
		Principal:    c.Loan.Principal,
		InterestRate: c.Loan.InterestRate,
		Years:        c.Loan.Years,
		Language:     c.Display.Language,
		Currency:     c.Display.Currency,
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard failures are left to the calculation itself.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if err := format.ValidateLanguage(c.Display.Language); err != nil {
		warnings = append(warnings, fmt.Sprintf("display language %q is not supported; expected one of %s",
			c.Display.Language, choiceValues(format.SupportedLanguages())))
	}
	if err := format.ValidateCurrency(c.Display.Currency); err != nil {
		warnings = append(warnings, fmt.Sprintf("display currency %q is not supported; expected one of %s",
			c.Display.Currency, choiceValues(format.SupportedCurrencies())))
	}

	params, err := amortization.ParseParameters(c.Loan.Principal, c.Loan.InterestRate, c.Loan.Years)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("loan parameters are invalid: %v", err))
		return warnings
	}

	if params.AnnualInterestRatePercent == 0 {
		if !mathutil.IsWhole(params.Principal / float64(params.TermMonths())) {
			warnings = append(warnings, fmt.Sprintf(
				"zero-interest loan of %s does not divide evenly over %d months; the final month absorbs the rounding difference",
				c.Loan.Principal, params.TermMonths()))
		}
	}

	return warnings
}

func choiceValues(choices []format.Choice) string {
	values := make([]string, 0, len(choices))
	for _, choice := range choices {
		values = append(values, choice.Value)
	}
	return strings.Join(values, ", ")
}
