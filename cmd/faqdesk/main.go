// Command faqdesk runs the retrieval-augmented enquiry chatbot.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "faqdesk",
	Short: "faqdesk answers questions from a knowledge document and captures enquiries",
	Long: `faqdesk is a small retrieval-augmented chatbot. It answers questions by
similarity lookup over a Q/A knowledge document, grounds a text-generation
call with the retrieved answer, and captures contact details for questions
it cannot answer.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the faqdesk version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("faqdesk", Version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
