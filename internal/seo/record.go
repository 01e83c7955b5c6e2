// Package seo extracts search-engine-relevant signals from raw HTML and
// exposes the fetch-and-extract pipeline as a tool the chat model can call.
package seo

// NotFound marks a field whose pattern never matched in the source markup.
// The record is serialized as tool output and read by the model as text, so
// absent fields carry an explicit sentinel instead of null.
const NotFound = "NOT FOUND"

// TextField pairs an extracted value with its length in runes. Length
// guidance (title under 100 chars, description 150-160) is the model's main
// lever, so it is precomputed here.
type TextField struct {
	Value  string `json:"value"`
	Length int    `json:"length"`
}

// OpenGraph holds the og: meta properties relevant to link previews.
type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Headings lists the visible heading texts by level. H1 is uncapped, H2 and
// H3 are capped at five entries each.
type Headings struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
}

// Images counts img tags and how many of them lack a non-empty alt.
type Images struct {
	Total      int `json:"total"`
	MissingAlt int `json:"missingAlt"`
}

// Technical covers viewport and charset declarations.
type Technical struct {
	Viewport string `json:"viewport"`
	Charset  string `json:"charset"`
}

// FeatureRecord is the structured result of scanning one page.
type FeatureRecord struct {
	URL             string    `json:"url"`
	Title           TextField `json:"title"`
	MetaDescription TextField `json:"metaDescription"`
	MetaKeywords    string    `json:"metaKeywords"`
	Canonical       string    `json:"canonical"`
	OpenGraph       OpenGraph `json:"openGraph"`
	Headings        Headings  `json:"headings"`
	Images          Images    `json:"images"`
	Technical       Technical `json:"technical"`
}
