package extract

import "context"

// Documents bundles the resume and job extraction capabilities so they can be
// injected into the session controller as a single collaborator.
type Documents struct {
	jobs JobOptions
}

// NewDocuments creates a Documents extractor with the given job fetch options.
func NewDocuments(jobs JobOptions) *Documents {
	return &Documents{jobs: jobs}
}

// ResumeText extracts plain text from an uploaded resume.
func (d *Documents) ResumeText(name string, data []byte) (string, error) {
	return ResumeText(name, data)
}

// JobText captures job description text from raw input (pasted text or URL).
func (d *Documents) JobText(ctx context.Context, raw string) (string, string, error) {
	return JobText(ctx, raw, &d.jobs)
}
