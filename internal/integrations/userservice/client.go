package userservice

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с UserService
type Client struct {
	http *resty.Client
	log  Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, retryCount int, log Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		http: httpClient,
		log:  log,
	}
}

// GetUser получает пользователя и его роль по ID
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("userId", userID).
		SetResult(&User{}).
		SetError(&ErrorResponse{}).
		Get("/internal/users/{userId}")
	if err != nil {
		c.log.Error("UserService request failed for user_id=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}

	// Обработка статус-кодов
	switch resp.StatusCode() {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		message := ""
		if e, ok := resp.Error().(*ErrorResponse); ok && e != nil {
			message = e.Error
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode(), message)
	}

	user, ok := resp.Result().(*User)
	if !ok || user == nil || user.ID == "" {
		return nil, fmt.Errorf("%w: empty user payload", ErrInvalidResponse)
	}

	return user, nil
}
