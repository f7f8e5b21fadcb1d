package faq

// Config holds runtime knobs for the FAQ service.
type Config struct {
	SimilarityThreshold float64
	MaxVocabulary       int
	TopSearchResults    int
	TrendingLimit       int
}
