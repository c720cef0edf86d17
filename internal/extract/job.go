package extract

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jonathan/resume-grader/internal/fetch"
)

// SourcePasted marks job text that was submitted directly rather than fetched.
const SourcePasted = "pasted"

// JobOptions configures job description capture.
type JobOptions struct {
	// Timeout bounds the URL fetch; zero uses fetch.DefaultTimeout.
	Timeout time.Duration
	// UseBrowser enables headless rendering for SPA job boards.
	UseBrowser bool
	Verbose    bool
}

// JobText captures job description text from raw conversational input.
// URL-looking input is fetched and its main content extracted; anything else
// is treated as pasted text. Returns the text and its source (SourcePasted
// or the URL).
func JobText(ctx context.Context, raw string, opts *JobOptions) (string, string, error) {
	if opts == nil {
		opts = &JobOptions{}
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", &FetchError{Source: SourcePasted, Message: "job description is empty"}
	}

	if !fetch.IsURL(raw) {
		return raw, SourcePasted, nil
	}

	return fetchJobText(ctx, raw, opts)
}

// fetchJobText retrieves a job posting URL and extracts its description text.
func fetchJobText(ctx context.Context, urlStr string, opts *JobOptions) (string, string, error) {
	platform := fetch.DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[VERBOSE] Fetching job posting from %s (platform: %s)", urlStr, platform)
	}

	result, err := fetch.URL(ctx, urlStr, &fetch.Options{Timeout: opts.Timeout})
	if err != nil {
		return "", "", &FetchError{Source: urlStr, Message: "could not fetch job posting", Cause: err}
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", "", &FetchError{Source: urlStr, Message: "could not extract posting content", Cause: err}
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		if opts.Verbose {
			log.Printf("[VERBOSE] Static content too short (%d chars), trying browser rendering", len(text))
		}
		if html, browserErr := fetch.Render(ctx, urlStr, opts.Timeout, opts.Verbose); browserErr == nil {
			if rendered, extractErr := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); extractErr == nil && len(rendered) > len(text) {
				text = rendered
			}
		} else if opts.Verbose {
			log.Printf("[VERBOSE] Browser rendering failed: %v, keeping static content", browserErr)
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", &FetchError{Source: urlStr, Message: "no job description content found at URL"}
	}

	return text, urlStr, nil
}
