package config

import "time"

const (
	// Generation request timeout
	RequestTimeout = 90 * time.Second

	// Completion request timeout (question elicitation)
	CoachTimeout = 30 * time.Second

	// HTTP export server shutdown grace
	ShutdownTimeout = 5 * time.Second

	// Images per generation request
	ImagesPerRequest = 1
)

// Per-image prices in USD, keyed by "size/quality". Used for the per-render
// cost ledger; unknown combinations fall back to PriceDefault.
var ImagePrices = map[string]float64{
	"1024x1024/standard": 0.040,
	"1024x1792/standard": 0.080,
	"1792x1024/standard": 0.080,
	"1024x1024/hd":       0.080,
	"1024x1792/hd":       0.120,
	"1792x1024/hd":       0.120,
}

const PriceDefault = 0.040
