package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-grader/internal/analysis"
	"github.com/jonathan/resume-grader/internal/extract"
	"github.com/jonathan/resume-grader/internal/observability"
	"github.com/jonathan/resume-grader/internal/session"
)

var (
	gradeResume     string
	gradeJob        string
	gradeAll        bool
	gradeConfig     string
	gradeUseBrowser bool
	gradeVerbose    bool
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade a resume against a job posting in one shot",
	Long: `Run a single non-interactive grading pass: score the resume against the
job posting, and optionally generate the missing-skills and tailored-summary
reports as well.`,
	RunE: runGrade,
}

func init() {
	gradeCmd.Flags().StringVar(&gradeResume, "resume", "", "Path to the resume file (PDF, DOCX, or plain text)")
	gradeCmd.Flags().StringVar(&gradeJob, "job", "", "Job posting URL, path to a text file, or the posting text itself")
	gradeCmd.Flags().BoolVar(&gradeAll, "all", false, "Also generate the missing-skills and tailored-summary reports")
	gradeCmd.Flags().StringVar(&gradeConfig, "config", "", "Path to JSON config file")
	gradeCmd.Flags().BoolVar(&gradeUseBrowser, "use-browser", false, "Render SPA job boards with a headless browser")
	gradeCmd.Flags().BoolVar(&gradeVerbose, "verbose", false, "Print detailed debug information")
	_ = gradeCmd.MarkFlagRequired("resume")
	_ = gradeCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(gradeCmd)
}

func runGrade(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(gradeConfig)
	if err != nil {
		return err
	}
	if gradeUseBrowser {
		cfg.UseBrowser = true
	}
	if gradeVerbose {
		cfg.Verbose = true
	}

	ctx := context.Background()
	engine, closeFn, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	// Resume
	data, err := os.ReadFile(gradeResume)
	if err != nil {
		return fmt.Errorf("cannot read resume %s: %w", gradeResume, err)
	}
	resumeText, err := extract.ResumeText(filepath.Base(gradeResume), data)
	if err != nil {
		return err
	}

	// Job: a file path is read as pasted text, everything else goes through
	// the conversational capture path (URL fetch or pasted text).
	jobInput := gradeJob
	if fileData, readErr := os.ReadFile(gradeJob); readErr == nil {
		jobInput = string(fileData)
	}
	jobText, source, err := extract.JobText(ctx, jobInput, &extract.JobOptions{
		Timeout:    cfg.FetchTimeout(),
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		return err
	}
	if cfg.Verbose {
		fmt.Printf("Job description captured from %s (%d chars)\n", source, len(jobText))
	}

	printer := observability.NewPrinter(os.Stdout)

	// The score always runs first; its failure aborts the pass.
	analyzeCtx, cancel := context.WithTimeout(ctx, cfg.AnalysisTimeout())
	defer cancel()
	scoreText, err := engine.Analyze(analyzeCtx, analysis.ModeFullScore, resumeText, jobText)
	if err != nil {
		return err
	}
	printer.PrintReport(session.Report{Mode: analysis.ModeFullScore, Text: scoreText, GeneratedAt: time.Now()})

	if !gradeAll {
		return nil
	}

	// The two secondary reports are independent; generate them in parallel.
	modes := []analysis.Mode{analysis.ModeMissingSkills, analysis.ModeTailoredSummary}
	texts := make([]string, len(modes))

	g, gCtx := errgroup.WithContext(ctx)
	for i, mode := range modes {
		g.Go(func() error {
			modeCtx, cancel := context.WithTimeout(gCtx, cfg.AnalysisTimeout())
			defer cancel()
			text, err := engine.Analyze(modeCtx, mode, resumeText, jobText)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, mode := range modes {
		printer.PrintReport(session.Report{Mode: mode, Text: texts[i], GeneratedAt: time.Now()})
	}
	return nil
}
