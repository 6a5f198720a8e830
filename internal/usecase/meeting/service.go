package meeting

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/pkg/ai"
	"github.com/johnquangdev/meeting-notes/pkg/jobcontext"
	"github.com/johnquangdev/meeting-notes/pkg/metrics"
)

// SummaryUnavailable replaces the summary when the summarizer fails
const SummaryUnavailable = "(Summary unavailable)"

// Request is one process-meeting invocation
type Request struct {
	MeetingID string
	AudioURL  string
	PushToken string
	RequestID string
}

// Result is returned when the meeting was processed
type Result struct {
	MeetingID string                 `json:"meeting_id"`
	Status    entities.MeetingStatus `json:"status"`
}

// AudioFetcher retrieves the raw audio of a meeting
type AudioFetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// Notifier delivers the "transcript ready" push to the mobile client
type Notifier interface {
	Send(ctx context.Context, token, meetingID, summary string) error
}

// Archiver keeps a copy of the produced artifacts
type Archiver interface {
	Archive(ctx context.Context, meetingID, transcript, summary string) error
}

// Locker serializes requests for the same meeting
type Locker interface {
	TryLock(ctx context.Context, meetingID string) (unlock func(), err error)
}

// Service defines meeting processing methods
type Service interface {
	ProcessMeeting(ctx context.Context, req Request) (*Result, error)
	GetMeeting(ctx context.Context, meetingID string) (*entities.Meeting, error)
}

// Dependencies are the adapters used by the service. Archiver, Locker and
// Metrics are optional.
type Dependencies struct {
	Fetcher     AudioFetcher
	Transcriber ai.Transcriber
	Summarizer  ai.Summarizer
	Meetings    repositories.MeetingRepository
	Notifier    Notifier
	Archiver    Archiver
	Locker      Locker
	Metrics     *metrics.Recorder
}

type meetingService struct {
	deps   Dependencies
	logger *zap.Logger
}

// NewService constructs a new meeting service
func NewService(deps Dependencies, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &meetingService{
		deps:   deps,
		logger: logger,
	}
}

// ProcessMeeting runs fetch, transcribe, summarize, persist and notify in order.
// A caller that disconnects does not abort the run; values on ctx are kept.
func (s *meetingService) ProcessMeeting(ctx context.Context, req Request) (result *Result, err error) {
	ctx = jobcontext.Begin(context.WithoutCancel(ctx), req.MeetingID, req.RequestID)
	log := jobcontext.Logger(ctx, s.logger)

	defer func() {
		s.deps.Metrics.ObserveRequest(resultCode(err))
		if err != nil {
			log.Error("meeting processing failed", zap.Error(err), zap.Duration("elapsed", jobcontext.Elapsed(ctx)))
			return
		}
		log.Info("meeting processed", zap.Duration("elapsed", jobcontext.Elapsed(ctx)))
	}()

	if s.deps.Locker != nil {
		unlock, lockErr := s.deps.Locker.TryLock(ctx, req.MeetingID)
		if lockErr != nil {
			if stderrors.Is(lockErr, entities.ErrMeetingLocked) {
				return nil, errors.ErrMeetingBusy(req.MeetingID)
			}
			return nil, errors.ErrInternal(lockErr)
		}
		defer unlock()
	}

	s.markStatus(ctx, req.MeetingID, entities.MeetingStatusProcessing)

	audio, err := s.fetch(ctx, req.AudioURL)
	if err != nil {
		s.markStatus(ctx, req.MeetingID, entities.MeetingStatusFailed)
		return nil, errors.ErrAudioDownloadFailed(err)
	}

	if !s.deps.Transcriber.Configured() {
		return nil, errors.ErrAIServiceUnavailable(s.deps.Transcriber.Name())
	}

	transcript, err := s.transcribe(ctx, audio)
	if err != nil {
		s.markStatus(ctx, req.MeetingID, entities.MeetingStatusFailed)
		return nil, errors.ErrAITranscriptionFailed(err)
	}

	summary, _ := s.summarize(ctx, transcript)

	if err := s.persist(ctx, req.MeetingID, transcript, summary); err != nil {
		return nil, errors.ErrDBUpdateFailed(err)
	}

	s.archive(ctx, req.MeetingID, transcript, summary)

	if req.PushToken != "" && s.deps.Notifier != nil {
		s.notify(ctx, req.PushToken, req.MeetingID, summary)
	} else {
		s.deps.Metrics.ObserveStep(metrics.StepNotify, metrics.OutcomeSkipped, 0)
	}

	return &Result{
		MeetingID: req.MeetingID,
		Status:    entities.MeetingStatusProcessed,
	}, nil
}

// GetMeeting returns the stored meeting or a NOT_FOUND error
func (s *meetingService) GetMeeting(ctx context.Context, meetingID string) (*entities.Meeting, error) {
	meeting, err := s.deps.Meetings.FindByID(ctx, meetingID)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("find meeting", err)
	}
	if meeting == nil {
		return nil, errors.ErrMeetingNotFound(meetingID)
	}
	return meeting, nil
}

func (s *meetingService) fetch(ctx context.Context, uri string) ([]byte, error) {
	ctx = jobcontext.WithStep(ctx, metrics.StepFetch)
	start := time.Now()

	audio, err := s.deps.Fetcher.Fetch(ctx, uri)
	if err != nil {
		s.deps.Metrics.ObserveStep(metrics.StepFetch, metrics.OutcomeError, time.Since(start))
		return nil, err
	}

	s.deps.Metrics.ObserveStep(metrics.StepFetch, metrics.OutcomeOK, time.Since(start))
	s.deps.Metrics.ObserveAudio(len(audio))
	jobcontext.Logger(ctx, s.logger).Debug("audio fetched", zap.Int("bytes", len(audio)))
	return audio, nil
}

func (s *meetingService) transcribe(ctx context.Context, audio []byte) (string, error) {
	ctx = jobcontext.WithStep(ctx, metrics.StepTranscribe)
	start := time.Now()

	transcript, err := s.deps.Transcriber.Transcribe(ctx, audio)
	if err != nil {
		s.deps.Metrics.ObserveStep(metrics.StepTranscribe, metrics.OutcomeError, time.Since(start))
		return "", err
	}

	s.deps.Metrics.ObserveStep(metrics.StepTranscribe, metrics.OutcomeOK, time.Since(start))
	jobcontext.Logger(ctx, s.logger).Debug("audio transcribed",
		zap.String("provider", s.deps.Transcriber.Name()),
		zap.Int("chars", len(transcript)),
	)
	return transcript, nil
}

// summarize never fails: degraded reports that the placeholder was used
func (s *meetingService) summarize(ctx context.Context, transcript string) (summary string, degraded bool) {
	ctx = jobcontext.WithStep(ctx, metrics.StepSummarize)
	if strings.TrimSpace(transcript) == "" {
		s.deps.Metrics.ObserveStep(metrics.StepSummarize, metrics.OutcomeSkipped, 0)
		return ai.NoSpeechSummary, false
	}

	start := time.Now()
	summary, err := s.deps.Summarizer.Summarize(ctx, transcript)
	if err != nil {
		s.deps.Metrics.ObserveStep(metrics.StepSummarize, metrics.OutcomeDegraded, time.Since(start))
		jobcontext.Logger(ctx, s.logger).Warn("summary unavailable",
			zap.String("provider", s.deps.Summarizer.Name()),
			zap.Error(err),
		)
		return SummaryUnavailable, true
	}

	s.deps.Metrics.ObserveStep(metrics.StepSummarize, metrics.OutcomeOK, time.Since(start))
	return summary, false
}

func (s *meetingService) persist(ctx context.Context, meetingID, transcript, summary string) error {
	ctx = jobcontext.WithStep(ctx, metrics.StepPersist)
	start := time.Now()

	if err := s.deps.Meetings.SaveResult(ctx, meetingID, entities.NewMeetingResult(transcript, summary)); err != nil {
		s.deps.Metrics.ObserveStep(metrics.StepPersist, metrics.OutcomeError, time.Since(start))
		return fmt.Errorf("failed to save meeting result: %w", err)
	}

	s.deps.Metrics.ObserveStep(metrics.StepPersist, metrics.OutcomeOK, time.Since(start))
	return nil
}

// markStatus is advisory: failures are logged and otherwise ignored
func (s *meetingService) markStatus(ctx context.Context, meetingID string, status entities.MeetingStatus) {
	ctx = jobcontext.WithStep(ctx, metrics.StepStatus)
	start := time.Now()

	if err := s.deps.Meetings.UpdateStatus(ctx, meetingID, status); err != nil {
		s.deps.Metrics.ObserveStep(metrics.StepStatus, metrics.OutcomeError, time.Since(start))
		jobcontext.Logger(ctx, s.logger).Warn("failed to update meeting status",
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return
	}
	s.deps.Metrics.ObserveStep(metrics.StepStatus, metrics.OutcomeOK, time.Since(start))
}

func (s *meetingService) archive(ctx context.Context, meetingID, transcript, summary string) {
	if s.deps.Archiver == nil {
		return
	}
	ctx = jobcontext.WithStep(ctx, metrics.StepArchive)
	start := time.Now()

	if err := s.deps.Archiver.Archive(ctx, meetingID, transcript, summary); err != nil {
		s.deps.Metrics.ObserveStep(metrics.StepArchive, metrics.OutcomeError, time.Since(start))
		jobcontext.Logger(ctx, s.logger).Warn("failed to archive meeting artifacts", zap.Error(err))
		return
	}
	s.deps.Metrics.ObserveStep(metrics.StepArchive, metrics.OutcomeOK, time.Since(start))
}

func (s *meetingService) notify(ctx context.Context, token, meetingID, summary string) {
	ctx = jobcontext.WithStep(ctx, metrics.StepNotify)
	start := time.Now()

	if err := s.deps.Notifier.Send(ctx, token, meetingID, summary); err != nil {
		s.deps.Metrics.ObserveStep(metrics.StepNotify, metrics.OutcomeError, time.Since(start))
		jobcontext.Logger(ctx, s.logger).Warn("push notification failed", zap.Error(errors.ErrNotificationFailed(err)))
		return
	}
	s.deps.Metrics.ObserveStep(metrics.StepNotify, metrics.OutcomeOK, time.Since(start))
}

func resultCode(err error) string {
	if err == nil {
		return errors.ErrorCode_HTTP_OK.String()
	}
	var appErr errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code.String()
	}
	return errors.ErrorCode_INTERNAL.String()
}
