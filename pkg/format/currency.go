// Package format renders amounts for a selected language and currency. The
// rendering itself is delegated to golang.org/x/text; this package only picks
// the locale, the currency unit and the style.
package format

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Style selects how an amount is rendered.
type Style string

const (
	// StyleCurrency renders the amount with the currency symbol.
	StyleCurrency Style = "currency"
	// StyleCode renders the amount with the ISO currency code.
	StyleCode Style = "code"
	// StyleDecimal renders a plain locale-formatted number.
	StyleDecimal Style = "decimal"
)

var (
	// ErrUnsupportedLanguage is returned for a language tag outside the supported set.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrUnsupportedCurrency is returned for a currency code outside the supported set.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrUnsupportedStyle is returned for an unknown Style.
	ErrUnsupportedStyle = errors.New("unsupported style")
)

// Options mirrors the options object of a locale number formatter.
type Options struct {
	Style    Style  `json:"style" yaml:"style"`
	Currency string `json:"currency" yaml:"currency"`
}

// Formatter formats a number for a language tag.
type Formatter interface {
	Format(amount float64, languageTag string, opts Options) (string, error)
}

// Choice is a selectable value with a human-readable label.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

var languages = []Choice{
	{Value: "hu-HU", Label: "Hungarian"},
	{Value: "en-US", Label: "ENG/USA"},
	{Value: "en-GB", Label: "ENG/GB"},
	{Value: "de-DE", Label: "German"},
}

var currencies = []Choice{
	{Value: "HUF", Label: "HUF"},
	{Value: "USD", Label: "USD"},
	{Value: "GBP", Label: "GBP"},
	{Value: "EUR", Label: "EUR"},
}

// SupportedLanguages returns the selectable language tags in display order.
func SupportedLanguages() []Choice {
	return append([]Choice(nil), languages...)
}

// SupportedCurrencies returns the selectable currency codes in display order.
func SupportedCurrencies() []Choice {
	return append([]Choice(nil), currencies...)
}

// ValidateLanguage checks a language tag against the supported set.
func ValidateLanguage(tag string) error {
	_, err := parseLanguage(tag)
	return err
}

// ValidateCurrency checks a currency code against the supported set.
func ValidateCurrency(code string) error {
	_, err := parseCurrency(code)
	return err
}

func parseLanguage(tag string) (language.Tag, error) {
	for _, choice := range languages {
		if strings.EqualFold(choice.Value, strings.TrimSpace(tag)) {
			return language.Parse(choice.Value)
		}
	}
	return language.Und, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, tag)
}

func parseCurrency(code string) (currency.Unit, error) {
	for _, choice := range currencies {
		if strings.EqualFold(choice.Value, strings.TrimSpace(code)) {
			return currency.ParseISO(choice.Value)
		}
	}
	return currency.Unit{}, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
}

// LocaleFormatter implements Formatter on top of the x/text locale data. It
// holds no state and is safe for concurrent use.
type LocaleFormatter struct{}

// NewLocaleFormatter returns the x/text backed Formatter.
func NewLocaleFormatter() *LocaleFormatter {
	return &LocaleFormatter{}
}

// Format renders amount for languageTag. An empty style means StyleCurrency.
func (LocaleFormatter) Format(amount float64, languageTag string, opts Options) (string, error) {
	tag, err := parseLanguage(languageTag)
	if err != nil {
		return "", err
	}
	printer := message.NewPrinter(tag)

	style := opts.Style
	if style == "" {
		style = StyleCurrency
	}

	switch style {
	case StyleDecimal:
		return printer.Sprint(number.Decimal(amount)), nil
	case StyleCurrency, StyleCode:
		unit, err := parseCurrency(opts.Currency)
		if err != nil {
			return "", err
		}
		if style == StyleCode {
			return printer.Sprint(currency.ISO(unit.Amount(amount))), nil
		}
		return printer.Sprint(currency.Symbol(unit.Amount(amount))), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedStyle, opts.Style)
	}
}

// Bound fixes the language and currency of a Formatter so callers can format
// many amounts with a single selection.
type Bound struct {
	formatter Formatter
	language  string
	options   Options
}

// Bind validates the selection once and returns a Bound formatter.
func Bind(f Formatter, languageTag, currencyCode string) (*Bound, error) {
	if f == nil {
		f = NewLocaleFormatter()
	}
	if err := ValidateLanguage(languageTag); err != nil {
		return nil, err
	}
	if err := ValidateCurrency(currencyCode); err != nil {
		return nil, err
	}
	return &Bound{
		formatter: f,
		language:  languageTag,
		options:   Options{Style: StyleCurrency, Currency: currencyCode},
	}, nil
}

// Format renders one amount with the bound selection.
func (b *Bound) Format(amount float64) (string, error) {
	return b.formatter.Format(amount, b.language, b.options)
}

// Language returns the bound language tag.
func (b *Bound) Language() string {
	return b.language
}

// Currency returns the bound currency code.
func (b *Bound) Currency() string {
	return b.options.Currency
}
