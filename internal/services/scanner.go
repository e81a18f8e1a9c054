package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const fetchTimeout = 15 * time.Second

// Violation is one detected accessibility problem on a scanned page.
type Violation struct {
	Type             string `json:"type"`
	ElementTag       string `json:"element_tag"`
	Source           string `json:"source,omitempty"`
	AIRecommendation string `json:"ai_recommendation,omitempty"`
}

// ScanResult carries the outcome of a completed page scan.
type ScanResult struct {
	URL           string      `json:"url"`
	Violations    []Violation `json:"violations"`
	ImagesScanned int         `json:"images_scanned"`
}

// FetchError means the target URL could not be retrieved. It aborts the
// scan and is surfaced to the caller, never swallowed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ScannerService fetches a page and extracts accessibility violations.
// The single rule implemented: an img element with no alt attribute, or
// an empty one, is a violation.
type ScannerService struct {
	client *http.Client
}

func NewScannerService() *ScannerService {
	return &ScannerService{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

func (s *ScannerService) Scan(url string) (*ScanResult, error) {
	resp, err := s.client.Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	result := &ScanResult{URL: url, Violations: []Violation{}}
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		result.ImagesScanned++

		alt, exists := sel.Attr("alt")
		if exists && alt != "" {
			return
		}

		tag, err := goquery.OuterHtml(sel)
		if err != nil {
			tag = "<img>"
		}
		result.Violations = append(result.Violations, Violation{
			Type:       "Missing Alt Text",
			ElementTag: tag,
			Source:     truncate(sel.AttrOr("src", ""), 64),
		})
	})

	return result, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
