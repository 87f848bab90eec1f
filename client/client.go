// Package client is the Go client for the StepUp Cloud API.
package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/aebonlee/stepup-cloud/backend/models"
)

const DefaultTimeout = 25 * time.Second

// Demo credentials accepted offline by a client built WithDemoLogin.
const (
	DemoEmail    = "test@sample.com"
	DemoPassword = "1234"
	DemoToken    = "test-token-123456789"
)

type Client struct {
	baseURL string
	timeout time.Duration
	demo    bool

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithDemoLogin lets Login accept the demo credentials without contacting the server.
func WithDemoLogin() Option {
	return func(c *Client) {
		c.demo = true
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Session is returned by Register and Login.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
	// Demo marks an offline session that the server knows nothing about.
	Demo bool `json:"-"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Created is the reply to every record insert.
type Created struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

type StudyInput struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Book    string `json:"book,omitempty"`
	Minutes int    `json:"minutes"`
}

type ReadingInput struct {
	Date      string `json:"date"`
	BookTitle string `json:"book_title"`
	Review    string `json:"review,omitempty"`
	Category  string `json:"category,omitempty"`
}

type AwardActivityInput struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	Subject string `json:"subject,omitempty"`
	Hours   int    `json:"hours,omitempty"`
}

type Health struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

func (c *Client) Register(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	if err := c.do(ctx, fiber.MethodPost, "/api/auth/register", credentials{email, password}, &session); err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	if c.demo && email == DemoEmail && password == DemoPassword {
		c.SetToken(DemoToken)
		return &Session{Token: DemoToken, User: models.PublicUser{ID: 1, Email: DemoEmail}, Demo: true}, nil
	}

	var session Session
	if err := c.do(ctx, fiber.MethodPost, "/api/auth/login", credentials{email, password}, &session); err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

// Logout revokes the current token on the server and forgets it locally.
func (c *Client) Logout(ctx context.Context) error {
	if c.Token() == DemoToken {
		c.SetToken("")
		return nil
	}
	err := c.do(ctx, fiber.MethodPost, "/api/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, fiber.MethodGet, "/api/user/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateStudyRecord(ctx context.Context, in StudyInput) (*Created, error) {
	return c.create(ctx, "/api/study-records", in)
}

func (c *Client) StudyRecords(ctx context.Context) ([]models.StudyRecord, error) {
	var recs []models.StudyRecord
	if err := c.do(ctx, fiber.MethodGet, "/api/study-records", nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *Client) CreateReadingRecord(ctx context.Context, in ReadingInput) (*Created, error) {
	return c.create(ctx, "/api/reading-records", in)
}

func (c *Client) ReadingRecords(ctx context.Context) ([]models.ReadingRecord, error) {
	var recs []models.ReadingRecord
	if err := c.do(ctx, fiber.MethodGet, "/api/reading-records", nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *Client) CreateAwardActivity(ctx context.Context, in AwardActivityInput) (*Created, error) {
	return c.create(ctx, "/api/awards-activities", in)
}

func (c *Client) AwardActivities(ctx context.Context) ([]models.AwardActivity, error) {
	var recs []models.AwardActivity
	if err := c.do(ctx, fiber.MethodGet, "/api/awards-activities", nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *Client) StudyStats(ctx context.Context) (*models.StudyStats, error) {
	var stats models.StudyStats
	if err := c.do(ctx, fiber.MethodGet, "/api/stats/study", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) ReadingStats(ctx context.Context) (*models.ReadingStats, error) {
	var stats models.ReadingStats
	if err := c.do(ctx, fiber.MethodGet, "/api/stats/reading", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) Overview(ctx context.Context) (*models.ProgressOverview, error) {
	var overview models.ProgressOverview
	if err := c.do(ctx, fiber.MethodGet, "/api/stats/overview", nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// Health reports the server status. A degraded server answers 503 with a body, which is
// returned together with the *APIError.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var health Health
	err := c.do(ctx, fiber.MethodGet, "/api/health", nil, &health)
	if err != nil && health.Status == "" {
		return nil, err
	}
	return &health, err
}

func (c *Client) create(ctx context.Context, path string, in interface{}) (*Created, error) {
	var created Created
	if err := c.do(ctx, fiber.MethodPost, path, in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// do sends one request. out is decoded for every reply that has a JSON body, including errors.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	agent.JSONEncoder(json.Marshal).JSONDecoder(json.Unmarshal)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return &NetworkError{Method: method, Path: path, Err: err}
	}

	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token := c.Token(); token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if in != nil {
		agent.JSON(in)
	}
	agent.Timeout(c.requestTimeout(ctx))

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return &NetworkError{Method: method, Path: path, Err: errs[0]}
	}

	if status >= fiber.StatusBadRequest {
		apiErr := &APIError{Status: status}
		var resp errorBody
		if json.Unmarshal(body, &resp) == nil {
			apiErr.Message = resp.Error
			apiErr.Detail = resp.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		if status == fiber.StatusUnauthorized {
			c.SetToken("")
		}
		if out != nil && len(body) > 0 {
			_ = json.Unmarshal(body, out)
		}
		return apiErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	return nil
}

// requestTimeout is the client timeout, shortened to the context deadline if that comes first.
func (c *Client) requestTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	return timeout
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
