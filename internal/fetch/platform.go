// Package fetch - platform.go provides job board detection and board-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformLinkedIn is the LinkedIn jobs platform
	PlatformLinkedIn Platform = "linkedin"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com"), strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	case strings.Contains(host, "linkedin.com"):
		return PlatformLinkedIn
	}

	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a specific platform,
// falling back to the generic job posting selectors.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return append([]string{
			".job__description.body",
			".job__description",
			"#content .content",
		}, JobPostingSelectors()...)
	case PlatformLever:
		return append([]string{
			".posting-page .section-wrapper",
			".posting",
			"[data-qa='job-description']",
		}, JobPostingSelectors()...)
	case PlatformWorkday:
		return append([]string{
			"[data-automation-id='jobPostingDescription']",
			"[data-automation-id='job-posting-details']",
		}, JobPostingSelectors()...)
	case PlatformLinkedIn:
		return append([]string{
			".description__text",
			".show-more-less-html__markup",
		}, JobPostingSelectors()...)
	default:
		return JobPostingSelectors()
	}
}

// PlatformNoiseSelectors returns elements to strip before text extraction
// for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{"#application", "#apply", ".application-form"}
	case PlatformLever:
		return []string{".postings-btn-wrapper", ".posting-apply"}
	case PlatformWorkday:
		return []string{"[data-automation-id='similarJobs']", "[data-automation-id='applyButton']"}
	case PlatformLinkedIn:
		return []string{".similar-jobs", ".apply-button", ".top-card-layout__cta-container"}
	default:
		return nil
	}
}
