package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planets-api",
	Short: "REST API for the planets catalog",
	Long: `planets-api serves a planetary catalog over HTTP: public reads,
authenticated writes, user registration/login and password reset by email.

Administrative database commands live under "planets-api db".`,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
