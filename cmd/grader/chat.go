package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-grader/internal/controller"
	"github.com/jonathan/resume-grader/internal/observability"
)

var (
	chatConfig     string
	chatUseBrowser bool
	chatVerbose    bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive grading conversation",
	Long: `Start a terminal conversation: upload a resume, send a job description
(pasted text or a posting URL), then request scores, missing skills, and
tailored summaries.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatConfig, "config", "", "Path to JSON config file")
	chatCmd.Flags().BoolVar(&chatUseBrowser, "use-browser", false, "Render SPA job boards with a headless browser")
	chatCmd.Flags().BoolVar(&chatVerbose, "verbose", false, "Print detailed debug information")
	rootCmd.AddCommand(chatCmd)
}

const chatHelp = `Commands:
  /resume <path>   Upload a resume file (PDF, DOCX, or plain text)
  /rerun           Recompute the compatibility score
  /missing         List skills the job wants that the resume lacks
  /summary         Write a professional summary tailored to the job
  /newjob          Clear the job description, keep the resume
  /status          Show the session state and cached reports
  /help            Show this help
  /quit            Exit

Anything else is treated as a job description: paste the posting text
or send its URL.`

func runChat(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(chatConfig)
	if err != nil {
		return err
	}
	if chatUseBrowser {
		cfg.UseBrowser = true
	}
	if chatVerbose {
		cfg.Verbose = true
	}

	ctx := context.Background()
	ctrl, closeFn, err := buildController(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create controller: %w", err)
	}
	defer closeFn()

	identity := uuid.New().String()
	printer := observability.NewPrinter(os.Stdout)

	fmt.Println("Resume grader - type /help for commands.")
	fmt.Println()
	fmt.Println("Upload your resume (PDF, DOCX, or plain text) to get started.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := runChatCommand(ctx, ctrl, printer, identity, line); quit {
				return nil
			}
			continue
		}

		// Plain text is job description input
		result := ctrl.HandleEvent(ctx, controller.JobSubmitted{ID: identity, Input: line})
		printer.PrintResult(result)
	}

	return scanner.Err()
}

// runChatCommand dispatches one slash command. Returns true on /quit.
func runChatCommand(ctx context.Context, ctrl *controller.Controller, printer *observability.Printer, identity, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/exit":
		fmt.Println("Bye.")
		return true

	case "/help":
		fmt.Println(chatHelp)

	case "/resume":
		if arg == "" {
			fmt.Println("Usage: /resume <path>")
			return false
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			fmt.Printf("Cannot read %s: %v\n", arg, err)
			return false
		}
		result := ctrl.HandleEvent(ctx, controller.ResumeUploaded{
			ID:       identity,
			FileName: filepath.Base(arg),
			Data:     data,
		})
		printer.PrintResult(result)

	case "/rerun":
		printer.PrintResult(ctrl.HandleEvent(ctx, controller.ActionTriggered{ID: identity, Action: controller.ActionRerun}))

	case "/missing":
		printer.PrintResult(ctrl.HandleEvent(ctx, controller.ActionTriggered{ID: identity, Action: controller.ActionMissingSkills}))

	case "/summary":
		printer.PrintResult(ctrl.HandleEvent(ctx, controller.ActionTriggered{ID: identity, Action: controller.ActionTailoredSummary}))

	case "/newjob":
		printer.PrintResult(ctrl.HandleEvent(ctx, controller.ActionTriggered{ID: identity, Action: controller.ActionNewJob}))

	case "/status":
		if sess, ok := ctrl.Store().Get(identity); ok {
			printer.PrintSession(sess)
		} else {
			fmt.Println("No session yet - upload a resume to get started.")
		}

	default:
		fmt.Printf("Unknown command %s - type /help for commands.\n", cmd)
	}
	return false
}
