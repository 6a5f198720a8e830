package process

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/app"
	"github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-notes/pkg/config"
	"github.com/johnquangdev/meeting-notes/pkg/logger"
)

var (
	audioURL  string
	meetingID string
	pushToken string
)

func init() {
	Cmd.Flags().StringVarP(&audioURL, "audio-url", "a", "", "URL of the recorded audio")
	Cmd.Flags().StringVarP(&meetingID, "meeting-id", "m", "", "meeting identifier in the record store")
	Cmd.Flags().StringVarP(&pushToken, "push-token", "p", "", "Expo push token to notify (optional)")

	Cmd.MarkFlagRequired("audio-url")
	Cmd.MarkFlagRequired("meeting-id")
}

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Process one meeting recording synchronously",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		zapLogger, err := logger.New(cfg.Server.Environment)
		if err != nil {
			return err
		}
		defer zapLogger.Sync()

		application, err := app.New(cmd.Context(), cfg, zapLogger)
		if err != nil {
			return err
		}
		defer application.Close()

		result, err := application.Service.ProcessMeeting(cmd.Context(), meeting.Request{
			MeetingID: meetingID,
			AudioURL:  audioURL,
			PushToken: pushToken,
			RequestID: uuid.NewString(),
		})
		if err != nil {
			zapLogger.Debug("process failed", zap.Error(err))
			return err
		}

		out, err := json.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
