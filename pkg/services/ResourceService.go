package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/adampresley/workshopadmin/pkg/models"
)

const (
	maxListBodySize = 10 << 20
)

type RemoveOutcome string

const (
	RemoveDeleted  RemoveOutcome = "deleted"
	RemoveNotFound RemoveOutcome = "not_found"
	RemoveFailed   RemoveOutcome = "failed"
)

/*
StatusError is returned when the backend answers with a status code
outside the 200 range.
*/
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Status)
}

func IsNotFound(err error) bool {
	var statusErr *StatusError

	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound
	}

	return false
}

/*
ListResult is the outcome of listing an entity. When Err is set, Rows is
an empty slice and the caller decides how to present the failure.
*/
type ListResult struct {
	Entity models.Entity
	Rows   []models.Row
	Err    error
}

func (r ListResult) OK() bool {
	return r.Err == nil
}

type RemoveResult struct {
	Entity     models.Entity
	ID         uint
	Outcome    RemoveOutcome
	StatusCode int
	Status     string
	Err        error
}

/*
Notification describes the result of a delete attempt in terms a user
understands.
*/
func (r RemoveResult) Notification() models.Notification {
	singular := r.Entity.Singular
	lower := strings.ToLower(singular)

	switch r.Outcome {
	case RemoveDeleted:
		return models.Notification{
			Level:   models.NotificationSuccess,
			Message: fmt.Sprintf("%s deleted successfully!", singular),
		}

	case RemoveNotFound:
		return models.Notification{
			Level:   models.NotificationWarning,
			Message: fmt.Sprintf("%s not found. It may have been already deleted.", singular),
		}
	}

	if r.StatusCode == 0 {
		return models.Notification{
			Level:   models.NotificationError,
			Message: fmt.Sprintf("Failed to delete %s. The server could not be reached.", lower),
		}
	}

	return models.Notification{
		Level:   models.NotificationError,
		Message: fmt.Sprintf("Failed to delete %s. Status: %d - %s", lower, r.StatusCode, r.Status),
	}
}

type ResourceServicer interface {
	List(ctx context.Context, entity models.Entity) ListResult
	Remove(ctx context.Context, entity models.Entity, id uint) RemoveResult
}

type ResourceServiceConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

/*
ResourceService talks to the backend REST API. Every entity shares the
same contract: GET {base}/{entity}/ lists and DELETE {base}/{entity}/{id}
removes.
*/
type ResourceService struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

func NewResourceService(config ResourceServiceConfig) ResourceService {
	httpClient := config.HTTPClient

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return ResourceService{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		timeout:    config.Timeout,
	}
}

func (s ResourceService) List(ctx context.Context, entity models.Entity) ListResult {
	var (
		err  error
		body []byte
		rows []models.Row
	)

	result := ListResult{
		Entity: entity,
		Rows:   []models.Row{},
	}

	listURL := fmt.Sprintf("%s/%s/", s.baseURL, entity.Name)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	response, err := s.do(ctx, http.MethodGet, listURL)

	if err != nil {
		slog.Error("error fetching records", "entity", entity.Name, "url", listURL, "error", err)
		result.Err = fmt.Errorf("error fetching %s: %w", entity.Title, err)
		return result
	}

	defer response.Body.Close()

	if !isSuccess(response.StatusCode) {
		statusErr := newStatusError(response)
		slog.Error("error fetching records", "entity", entity.Name, "url", listURL, "status", response.StatusCode)

		_, _ = io.Copy(io.Discard, response.Body)
		result.Err = fmt.Errorf("error fetching %s: %w", entity.Title, statusErr)
		return result
	}

	if body, err = io.ReadAll(io.LimitReader(response.Body, maxListBodySize)); err != nil {
		slog.Error("error reading response body", "entity", entity.Name, "url", listURL, "error", err)
		result.Err = fmt.Errorf("error reading %s: %w", entity.Title, err)
		return result
	}

	if rows, err = entity.DecodeRows(body); err != nil {
		slog.Error("error decoding records", "entity", entity.Name, "url", listURL, "error", err)
		result.Err = fmt.Errorf("error decoding %s: %w", entity.Title, err)
		return result
	}

	result.Rows = rows
	return result
}

func (s ResourceService) Remove(ctx context.Context, entity models.Entity, id uint) RemoveResult {
	result := RemoveResult{
		Entity:  entity,
		ID:      id,
		Outcome: RemoveFailed,
	}

	deleteURL := fmt.Sprintf("%s/%s/%d", s.baseURL, entity.Name, id)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	response, err := s.do(ctx, http.MethodDelete, deleteURL)

	if err != nil {
		slog.Error("error deleting record", "entity", entity.Name, "id", id, "error", err)
		result.Err = fmt.Errorf("error deleting %s %d: %w", entity.Name, id, err)
		return result
	}

	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)

	result.StatusCode = response.StatusCode
	result.Status = http.StatusText(response.StatusCode)

	switch {
	case isSuccess(response.StatusCode):
		result.Outcome = RemoveDeleted

	case response.StatusCode == http.StatusNotFound:
		result.Outcome = RemoveNotFound
		result.Err = newStatusError(response)

	default:
		result.Err = newStatusError(response)
		slog.Error("error deleting record", "entity", entity.Name, "id", id, "status", response.StatusCode)
	}

	return result
}

func (s ResourceService) do(ctx context.Context, method, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)

	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	return s.httpClient.Do(req)
}

func (s ResourceService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.timeout)
}

func newStatusError(response *http.Response) *StatusError {
	return &StatusError{
		StatusCode: response.StatusCode,
		Status:     http.StatusText(response.StatusCode),
	}
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
