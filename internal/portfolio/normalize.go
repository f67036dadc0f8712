package portfolio

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidData      = errors.New("invalid portfolio data")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidCurrency  = errors.New("invalid currency")
	ErrInvalidRiskLevel = errors.New("invalid risk level")
	ErrInvalidTag       = errors.New("invalid tag")
	ErrTooManyTags      = errors.New("too many tags")
)

const (
	MaxNameLength      = 120
	MaxNoteLength      = 200
	MaxStrategyLength  = 40
	MaxSentimentLength = 40
	MaxTagLength       = 20
	MaxTags            = 8
)

const (
	DefaultCategory  = "股票"
	DefaultCurrency  = "USD"
	DefaultRiskLevel = "medium"
)

// categoryMap accepts the canonical native label exactly and the English
// alias case-insensitively, both mapping to the canonical label.
var categoryMap = map[string]string{
	"股票":     "股票",
	"虚拟币":    "虚拟币",
	"ETF":    "ETF",
	"现金":     "现金",
	"stock":  "股票",
	"crypto": "虚拟币",
	"etf":    "ETF",
	"cash":   "现金",
}

var supportedCurrencies = map[string]struct{}{
	"CNY": {},
	"USD": {},
	"HKD": {},
	"EUR": {},
}

var riskLevels = map[string]struct{}{
	"low":    {},
	"medium": {},
	"high":   {},
}

// Payload carries the raw fields of an add/update request, after JSON
// decoding but before any cleaning.
type Payload struct {
	Name         string
	Category     string
	Quantity     decimal.Decimal
	Cost         decimal.Decimal
	Currency     string
	CurrentPrice *decimal.Decimal
	RiskLevel    string
	Strategy     string
	Sentiment    string
	Note         string
	Tags         []string
}

// Normalized is the canonical form consumed by the reconciler. Optional
// free-text fields are nil when absent.
type Normalized struct {
	Name         string
	Category     string
	Quantity     decimal.Decimal
	Cost         decimal.Decimal
	Currency     string
	CurrentPrice decimal.NullDecimal
	RiskLevel    string
	Strategy     *string
	Sentiment    *string
	Note         *string
	Tags         []string
}

// NormalizeName collapses internal whitespace runs to single spaces and trims
// the ends. The lowercased result is the holding's identity key.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Normalize validates and cleans a raw payload into its canonical form.
// All failures are detected here, before any mutation happens downstream.
func Normalize(p Payload) (Normalized, error) {
	if p.Quantity.LessThanOrEqual(decimal.Zero) || p.Cost.IsNegative() {
		return Normalized{}, ErrInvalidData
	}
	name := NormalizeName(p.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return Normalized{}, ErrInvalidData
	}
	category, ok := normalizeCategory(p.Category)
	if !ok {
		return Normalized{}, ErrInvalidCategory
	}
	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if _, ok := supportedCurrencies[currency]; !ok {
		return Normalized{}, ErrInvalidCurrency
	}
	riskLevel := strings.ToLower(strings.TrimSpace(p.RiskLevel))
	if _, ok := riskLevels[riskLevel]; !ok {
		return Normalized{}, ErrInvalidRiskLevel
	}
	var currentPrice decimal.NullDecimal
	if p.CurrentPrice != nil {
		if p.CurrentPrice.IsNegative() {
			return Normalized{}, ErrInvalidData
		}
		currentPrice = decimal.NullDecimal{Decimal: *p.CurrentPrice, Valid: true}
	}
	note, err := optionalText(p.Note, MaxNoteLength)
	if err != nil {
		return Normalized{}, err
	}
	strategy, err := optionalText(p.Strategy, MaxStrategyLength)
	if err != nil {
		return Normalized{}, err
	}
	sentiment, err := optionalText(p.Sentiment, MaxSentimentLength)
	if err != nil {
		return Normalized{}, err
	}
	tags, err := NormalizeTags(p.Tags)
	if err != nil {
		return Normalized{}, err
	}
	return Normalized{
		Name:         name,
		Category:     category,
		Quantity:     p.Quantity,
		Cost:         p.Cost,
		Currency:     currency,
		CurrentPrice: currentPrice,
		RiskLevel:    riskLevel,
		Strategy:     strategy,
		Sentiment:    sentiment,
		Note:         note,
		Tags:         tags,
	}, nil
}

func normalizeCategory(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if category, ok := categoryMap[raw]; ok {
		return category, true
	}
	category, ok := categoryMap[strings.ToLower(raw)]
	return category, ok
}

func optionalText(raw string, maxLength int) (*string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxLength {
		return nil, ErrInvalidData
	}
	return &trimmed, nil
}
