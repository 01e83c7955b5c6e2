package seo

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const headingLimit = 5

// Real-world markup is rarely well formed, so extraction is pattern scanning
// rather than parsing. Meta attributes may appear in either order; both
// orderings are tried where it matters.
var (
	titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

	metaDescriptionRe     = regexp.MustCompile(`(?is)<meta[^>]*name=["']description["'][^>]*content=["'](.*?)["'][^>]*>`)
	metaDescriptionSwapRe = regexp.MustCompile(`(?is)<meta[^>]*content=["'](.*?)["'][^>]*name=["']description["'][^>]*>`)
	metaKeywordsRe        = regexp.MustCompile(`(?is)<meta[^>]*name=["']keywords["'][^>]*content=["'](.*?)["'][^>]*>`)
	canonicalRe           = regexp.MustCompile(`(?is)<link[^>]*rel=["']canonical["'][^>]*href=["'](.*?)["'][^>]*>`)

	ogTitleRe       = regexp.MustCompile(`(?is)<meta[^>]*property=["']og:title["'][^>]*content=["'](.*?)["'][^>]*>`)
	ogDescriptionRe = regexp.MustCompile(`(?is)<meta[^>]*property=["']og:description["'][^>]*content=["'](.*?)["'][^>]*>`)
	ogImageRe       = regexp.MustCompile(`(?is)<meta[^>]*property=["']og:image["'][^>]*content=["'](.*?)["'][^>]*>`)

	h1Re = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	h2Re = regexp.MustCompile(`(?is)<h2[^>]*>(.*?)</h2>`)
	h3Re = regexp.MustCompile(`(?is)<h3[^>]*>(.*?)</h3>`)

	imgRe    = regexp.MustCompile(`(?i)<img[^>]*>`)
	imgAltRe = regexp.MustCompile(`(?i)alt=["'][^"']+["']`)

	viewportRe = regexp.MustCompile(`(?is)<meta[^>]*name=["']viewport["'][^>]*content=["'](.*?)["'][^>]*>`)
	charsetRe  = regexp.MustCompile(`(?i)<meta[^>]*charset=["']?([^"'\s>]+)`)

	innerTagRe = regexp.MustCompile(`<[^>]+>`)
)

// Extract scans raw HTML for SEO-relevant signals. It is pure and
// deterministic, and it never fails: a pattern that does not match yields
// the NOT FOUND sentinel for that field only.
func Extract(html, sourceURL string) FeatureRecord {
	title := firstMatch(titleRe, html)
	if title == "" {
		title = NotFound
	}

	description := firstMatch(metaDescriptionRe, html)
	if description == "" {
		description = firstMatch(metaDescriptionSwapRe, html)
	}
	if description == "" {
		description = NotFound
	}

	total, missingAlt := countImages(html)

	return FeatureRecord{
		URL:             sourceURL,
		Title:           TextField{Value: title, Length: utf8.RuneCountInString(title)},
		MetaDescription: TextField{Value: description, Length: utf8.RuneCountInString(description)},
		MetaKeywords:    firstMatchOrSentinel(metaKeywordsRe, html),
		Canonical:       firstMatchOrSentinel(canonicalRe, html),
		OpenGraph: OpenGraph{
			Title:       firstMatchOrSentinel(ogTitleRe, html),
			Description: firstMatchOrSentinel(ogDescriptionRe, html),
			Image:       firstMatchOrSentinel(ogImageRe, html),
		},
		Headings: Headings{
			H1: allMatches(h1Re, html, 0),
			H2: allMatches(h2Re, html, headingLimit),
			H3: allMatches(h3Re, html, headingLimit),
		},
		Images:    Images{Total: total, MissingAlt: missingAlt},
		Technical: Technical{
			Viewport: firstMatchOrSentinel(viewportRe, html),
			Charset:  firstMatchOrSentinel(charsetRe, html),
		},
	}
}

// firstMatch returns the trimmed first capture group, or "" when the
// pattern does not match.
func firstMatch(re *regexp.Regexp, html string) string {
	m := re.FindStringSubmatch(html)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func firstMatchOrSentinel(re *regexp.Regexp, html string) string {
	if v := firstMatch(re, html); v != "" {
		return v
	}
	return NotFound
}

// allMatches collects every capture of re, strips nested markup from the
// captured text, trims it, drops empty results, and caps the list at limit
// when limit is positive.
func allMatches(re *regexp.Regexp, html string, limit int) []string {
	results := make([]string, 0)
	for _, m := range re.FindAllStringSubmatch(html, -1) {
		if len(m) < 2 {
			continue
		}
		text := strings.TrimSpace(innerTagRe.ReplaceAllString(m[1], ""))
		if text == "" {
			continue
		}
		results = append(results, text)
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results
}

// countImages returns the total number of img tags and how many of them
// lack a non-empty alt attribute. RE2 has no lookahead, so the missing
// count is derived as total minus tags carrying an alt.
func countImages(html string) (total, missingAlt int) {
	tags := imgRe.FindAllString(html, -1)
	total = len(tags)
	for _, tag := range tags {
		if !imgAltRe.MatchString(tag) {
			missingAlt++
		}
	}
	return total, missingAlt
}
