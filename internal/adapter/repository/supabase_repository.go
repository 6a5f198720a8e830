package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// SupabaseMeetingRepository updates meeting rows through Supabase's PostgREST API
type SupabaseMeetingRepository struct {
	configured bool
	table      string
	client     *resty.Client
}

var _ repositories.MeetingRepository = (*SupabaseMeetingRepository)(nil)

// NewSupabaseMeetingRepository creates the repository. Missing URL or key is
// reported per call as entities.ErrStoreNotConfigured.
func NewSupabaseMeetingRepository(cfg *config.SupabaseConfig) *SupabaseMeetingRepository {
	table := cfg.Table
	if table == "" {
		table = "meetings"
	}
	baseURL := strings.TrimRight(cfg.URL, "/")
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("apikey", cfg.ServiceKey).
		SetAuthToken(cfg.ServiceKey).
		SetHeader("Accept", "application/json")
	return &SupabaseMeetingRepository{
		configured: baseURL != "" && cfg.ServiceKey != "",
		table:      table,
		client:     client,
	}
}

// UpdateStatus updates meeting status
func (r *SupabaseMeetingRepository) UpdateStatus(ctx context.Context, meetingID string, status entities.MeetingStatus) error {
	return r.patch(ctx, meetingID, map[string]interface{}{"status": status})
}

// SaveResult stores the pipeline output and marks the meeting processed
func (r *SupabaseMeetingRepository) SaveResult(ctx context.Context, meetingID string, result entities.MeetingResult) error {
	return r.patch(ctx, meetingID, result.Fields())
}

// FindByID retrieves a meeting by ID
func (r *SupabaseMeetingRepository) FindByID(ctx context.Context, meetingID string) (*entities.Meeting, error) {
	if !r.configured {
		return nil, entities.ErrStoreNotConfigured
	}

	var rows []entities.Meeting
	resp, err := r.request(ctx, meetingID).
		SetQueryParam("select", "*").
		SetResult(&rows).
		ForceContentType("application/json").
		Get(r.path())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meeting: %w", err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *SupabaseMeetingRepository) patch(ctx context.Context, meetingID string, fields map[string]interface{}) error {
	if !r.configured {
		return entities.ErrStoreNotConfigured
	}

	resp, err := r.request(ctx, meetingID).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=minimal").
		SetBody(fields).
		Patch(r.path())
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

// request targets the rows of the table whose id equals meetingID
func (r *SupabaseMeetingRepository) request(ctx context.Context, meetingID string) *resty.Request {
	return r.client.R().
		SetContext(ctx).
		SetQueryParam("id", "eq."+meetingID)
}

func (r *SupabaseMeetingRepository) path() string {
	return "/rest/v1/" + url.PathEscape(r.table)
}

func checkResponse(resp *resty.Response) error {
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("supabase returned status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}
