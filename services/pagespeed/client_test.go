package pagespeed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in, want string
		ok       bool
	}{
		{"example.com", "https://example.com", true},
		{" http://shop.co.il/path ", "http://shop.co.il/path", true},
		{"", "", false},
		{"ftp://example.com", "", false},
		{"https://", "", false},
	}
	for _, tc := range cases {
		got, err := NormalizeURL(tc.in)
		if (err == nil) != tc.ok || got != tc.want {
			t.Errorf("NormalizeURL(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestClientRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("url") != "https://example.com" || q.Get("key") != "k" || q.Get("category") != "performance" {
			t.Errorf("unexpected query %v", q)
		}
		_, _ = io.WriteString(w, sampleResponse)
	}))
	defer srv.Close()

	res, err := NewClient("k").WithEndpoint(srv.URL).Run(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.LighthouseResult == nil || res.LighthouseResult.FinalURL != "https://www.example.com/" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestClientRunError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := NewClient("").WithEndpoint(srv.URL).Run(context.Background(), "example.com"); err == nil {
		t.Fatal("expected error on 429")
	}
}

type stubRunner struct {
	calls int
	res   *Result
	err   error
}

func (s *stubRunner) Run(context.Context, string) (*Result, error) {
	s.calls++
	return s.res, s.err
}

func TestServiceWithoutCache(t *testing.T) {
	runner := &stubRunner{res: decodeSample(t, sampleResponse)}
	svc := NewService(runner, nil, nil)

	sum, err := svc.Insights(context.Background(), "example.com")
	if err != nil || sum.PerformanceScore != "73" {
		t.Fatalf("insights: %+v, %v", sum, err)
	}

	runner.err = errors.New("boom")
	if _, err := svc.Insights(context.Background(), "example.com"); err == nil {
		t.Fatal("runner error swallowed")
	}
	if _, err := svc.Insights(context.Background(), ""); err == nil || runner.calls != 2 {
		t.Fatalf("empty url should fail before running, calls=%d", runner.calls)
	}
}
