package models

// PageSpeedSummary is the condensed Lighthouse result handed to the model.
type PageSpeedSummary struct {
	RequestedURL     string   `json:"requestedUrl"`
	FinalURL         string   `json:"finalUrl"`
	PerformanceScore string   `json:"performanceScore"`
	LCP              string   `json:"lcp"`
	INP              string   `json:"inp"`
	CLS              string   `json:"cls"`
	Recommendations  []string `json:"recommendations"`
	More             bool     `json:"more"`
}
