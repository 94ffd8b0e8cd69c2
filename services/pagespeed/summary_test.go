package pagespeed

import (
	"encoding/json"
	"strings"
	"testing"
)

const sampleResponse = `{
  "lighthouseResult": {
    "requestedUrl": "https://example.com/",
    "finalUrl": "https://www.example.com/",
    "categories": {"performance": {"id": "performance", "score": 0.734}},
    "audits": {
      "largest-contentful-paint": {"title": "Largest Contentful Paint", "score": 0.5, "displayValue": "3.1 s"},
      "interactive": {"title": "Time to Interactive", "score": 1, "displayValue": "2.0 s"},
      "cumulative-layout-shift": {"title": "Cumulative Layout Shift", "score": 1, "displayValue": "0.01"},
      "render-blocking-resources": {"title": "Eliminate render-blocking resources", "score": 0.2},
      "uses-webp-images": {"title": "Serve images in modern formats", "score": 0},
      "diagnostics": {"title": "Diagnostics", "score": null},
      "unnamed": {"score": 0}
    },
    "runWarnings": ["The page loaded too slowly"]
  }
}`

func decodeSample(t *testing.T, s string) *Result {
	t.Helper()
	var r Result
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		t.Fatalf("decode sample: %v", err)
	}
	return &r
}

func TestSummarize(t *testing.T) {
	sum := Summarize(decodeSample(t, sampleResponse))

	if sum.RequestedURL != "https://example.com/" || sum.FinalURL != "https://www.example.com/" {
		t.Fatalf("urls: %+v", sum)
	}
	if sum.PerformanceScore != "73" {
		t.Fatalf("score = %q", sum.PerformanceScore)
	}
	if sum.LCP != "3.1 s" || sum.INP != "2.0 s" || sum.CLS != "0.01" {
		t.Fatalf("metrics: %+v", sum)
	}
	// Failing audits in key order: diagnostics, largest-contentful-paint,
	// render-blocking-resources, uses-webp-images, then the warning.
	want := []string{"Diagnostics", "Largest Contentful Paint", "Eliminate render-blocking resources"}
	if len(sum.Recommendations) != len(want) {
		t.Fatalf("recommendations = %v", sum.Recommendations)
	}
	for i := range want {
		if sum.Recommendations[i] != want[i] {
			t.Fatalf("recommendations[%d] = %q, want %q", i, sum.Recommendations[i], want[i])
		}
	}
	if !sum.More {
		t.Fatal("More should be set when recommendations were truncated")
	}
}

func TestSummarizeMissingData(t *testing.T) {
	for _, res := range []*Result{nil, {}, decodeSample(t, `{"lighthouseResult":{}}`)} {
		sum := Summarize(res)
		if sum.PerformanceScore != "N/A" || sum.LCP != "N/A" || sum.RequestedURL != "N/A" {
			t.Fatalf("expected N/A defaults, got %+v", sum)
		}
		if sum.Recommendations == nil || len(sum.Recommendations) != 0 || sum.More {
			t.Fatalf("expected empty recommendations, got %+v", sum)
		}
	}
}

func TestSummarizeWarningsOnly(t *testing.T) {
	sum := Summarize(decodeSample(t, `{"lighthouseResult":{"runWarnings":["a","b"]}}`))
	if len(sum.Recommendations) != 2 || sum.Recommendations[0] != "Warning: a" || sum.More {
		t.Fatalf("unexpected %+v", sum)
	}
}

func TestFormat(t *testing.T) {
	out := Format(Summarize(decodeSample(t, sampleResponse)))
	for _, want := range []string{
		"PageSpeed Summary for https://example.com/ (Final URL: https://www.example.com/)",
		"- Performance Score: 73",
		"- LCP (Largest Contentful Paint): 3.1 s",
		"Eliminate render-blocking resources...",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	empty := Format(Summarize(nil))
	if !strings.Contains(empty, "No specific recommendations found") {
		t.Fatalf("empty summary text:\n%s", empty)
	}
}
