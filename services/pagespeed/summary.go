package pagespeed

import (
	"fmt"
	"sort"
	"strings"

	"outreach/models"
)

const (
	notAvailable       = "N/A"
	maxRecommendations = 3
)

// Summarize condenses a Lighthouse result into the fields the assistant quotes.
func Summarize(res *Result) models.PageSpeedSummary {
	sum := models.PageSpeedSummary{
		RequestedURL:     notAvailable,
		FinalURL:         notAvailable,
		PerformanceScore: notAvailable,
		LCP:              notAvailable,
		INP:              notAvailable,
		CLS:              notAvailable,
		Recommendations:  []string{},
	}
	if res == nil || res.LighthouseResult == nil {
		return sum
	}
	lr := res.LighthouseResult

	sum.RequestedURL = orNA(lr.RequestedURL)
	sum.FinalURL = orNA(lr.FinalURL)
	if perf, ok := lr.Categories["performance"]; ok && perf.Score != nil {
		sum.PerformanceScore = fmt.Sprintf("%.0f", *perf.Score*100)
	}
	sum.LCP = orNA(lr.Audits["largest-contentful-paint"].DisplayValue)
	sum.INP = orNA(lr.Audits["interactive"].DisplayValue)
	sum.CLS = orNA(lr.Audits["cumulative-layout-shift"].DisplayValue)

	keys := make([]string, 0, len(lr.Audits))
	for k := range lr.Audits {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var recs []string
	for _, k := range keys {
		a := lr.Audits[k]
		if a.Title == "" || (a.Score != nil && *a.Score == 1) {
			continue
		}
		recs = append(recs, a.Title)
	}
	for _, w := range lr.RunWarnings {
		recs = append(recs, "Warning: "+w)
	}

	if len(recs) > maxRecommendations {
		sum.More = true
		recs = recs[:maxRecommendations]
	}
	if recs != nil {
		sum.Recommendations = recs
	}
	return sum
}

// Format renders a summary as the text handed back to the model.
func Format(sum models.PageSpeedSummary) string {
	recs := "No specific recommendations found or page could not be fully loaded."
	if len(sum.Recommendations) > 0 {
		recs = strings.Join(sum.Recommendations, ", ")
		if sum.More {
			recs += "..."
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "PageSpeed Summary for %s (Final URL: %s):\n", sum.RequestedURL, sum.FinalURL)
	fmt.Fprintf(&b, "- Performance Score: %s\n", sum.PerformanceScore)
	fmt.Fprintf(&b, "- LCP (Largest Contentful Paint): %s\n", sum.LCP)
	fmt.Fprintf(&b, "- INP (Interaction to Next Paint): %s\n", sum.INP)
	fmt.Fprintf(&b, "- CLS (Cumulative Layout Shift): %s\n", sum.CLS)
	fmt.Fprintf(&b, "- Recommendations: %s", recs)
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
