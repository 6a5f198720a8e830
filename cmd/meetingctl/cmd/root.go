package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-notes/cmd/meetingctl/cmd/migrate"
	"github.com/johnquangdev/meeting-notes/cmd/meetingctl/cmd/process"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "meetingctl",
	Short: "Operate the meeting notes pipeline from the command line",
	Long: `Operate the meeting notes pipeline from the command line.
- process runs one meeting through fetch, transcription, summary, store and push
- migrate manages the meetings table when RECORD_STORE=postgres
Configuration is read from the environment and .env, like the API server.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(process.Cmd)
	rootCmd.AddCommand(migrate.Cmd)
}
