// Package main provides the entry point for the resume grader.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grader",
	Short: "Resume vs job description compatibility assistant",
	Long:  "Grader scores a resume against a job posting, lists missing skills, and writes tailored professional summaries, as an interactive chat or a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
