package scraper

import (
	"regexp"
	"strings"
)

// BlockDetector spots bot walls and CAPTCHA interstitials in page content so
// an extractor can bail out early instead of scraping a challenge page.
type BlockDetector struct {
	wallPatterns    []*regexp.Regexp
	captchaPatterns []*regexp.Regexp
}

// NewBlockDetector creates a detector with the stock pattern set.
func NewBlockDetector() *BlockDetector {
	return &BlockDetector{
		wallPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)access denied`),
			regexp.MustCompile(`(?i)unusual traffic`),
			regexp.MustCompile(`(?i)automated access`),
			regexp.MustCompile(`(?i)checking your browser`),
			regexp.MustCompile(`(?i)too many requests`),
			regexp.MustCompile(`(?i)503 service unavailable`),
		},
		captchaPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)captcha`),
			regexp.MustCompile(`(?i)verify you are (a )?human`),
			regexp.MustCompile(`(?i)enter the characters you see`),
		},
	}
}

// Detect reports whether the page looks like a block wall and which pattern
// tripped it. CAPTCHA hits require some page body to avoid false positives
// on empty documents.
func (bd *BlockDetector) Detect(pageText, pageTitle string) (bool, string) {
	content := strings.ToLower(pageText + " " + pageTitle)
	if strings.TrimSpace(content) == "" {
		return false, ""
	}

	for _, pattern := range bd.captchaPatterns {
		if pattern.MatchString(content) {
			return true, "captcha: " + pattern.String()
		}
	}
	for _, pattern := range bd.wallPatterns {
		if pattern.MatchString(content) {
			return true, "bot wall: " + pattern.String()
		}
	}
	return false, ""
}
