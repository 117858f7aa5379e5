package gradeauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// Credential is a login payload. It is built per attempt and never persisted.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (c Credential) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(
			&c.Username,
			validation.Required,
		),
		validation.Field(
			&c.Password,
			validation.Required,
		),
	)
}

// RegistrationRequest is the create-account payload. The role selector is
// not part of the body; it only picks the submission endpoint.
type RegistrationRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// Validate will validate the payload
func (r RegistrationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Required),
	)
}

// tokenResponse is the body of a successful create-session call.
type tokenResponse struct {
	Token string `json:"token"`
}

// AuthClient issues login and registration requests against the platform
// API and drives the TokenStore and SessionState on success. All transport
// and server failures collapse to one static message per operation; no
// retries, these are user-initiated one-shot actions.
type AuthClient struct {
	cfg        Config
	httpClient *http.Client
	store      *TokenStore
	session    *SessionState
	codec      *TokenCodec
	logger     Logger
	inFlight   atomic.Bool
}

// NewAuthClient returns a new AuthClient
func NewAuthClient(cfg Config, store *TokenStore, session *SessionState, codec *TokenCodec) *AuthClient {
	if codec == nil {
		codec = NewTokenCodec()
	}

	return &AuthClient{
		cfg:   cfg,
		store: store,
		httpClient: &http.Client{
			Timeout: cfg.GetRequestTimeout(),
		},
		session: session,
		codec:   codec,
		logger:  defLogger{},
	}
}

func (a *AuthClient) WithLogger(logger Logger) *AuthClient {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithHTTPClient overrides the underlying HTTP client.
func (a *AuthClient) WithHTTPClient(client *http.Client) *AuthClient {
	if client != nil {
		a.httpClient = client
	}
	return a
}

// Login posts the credential to the create-session endpoint. On success the
// issued token is saved under the requested scope and the session is marked
// authenticated. Any failure leaves storage and session untouched and
// returns the fixed login error message.
func (a *AuthClient) Login(ctx context.Context, credential Credential, remember bool) (string, error) {
	if err := credential.Validate(); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}

	if !a.inFlight.CompareAndSwap(false, true) {
		return "", ErrRequestInFlight
	}
	defer a.inFlight.Store(false)

	if a.cfg.GetDebug() {
		a.logger.Debug("login payload: %s", print.MaybePrettyJSON(credential))
	}

	var resp tokenResponse
	if err := a.post(ctx, a.cfg.GetLoginPath(), credential, &resp); err != nil {
		a.logger.Info("login rejected: %v", err)
		return "", ErrLoginRejected
	}

	claims, err := a.codec.Decode(resp.Token)
	if err != nil {
		a.logger.Error("login response carried an undecodable token: %v", err)
		return "", ErrLoginRejected
	}

	if err := a.store.Save(resp.Token, remember); err != nil {
		a.logger.Error("failed to persist issued token: %v", err)
		return "", ErrLoginRejected
	}

	a.session.MarkAuthenticated(claims)

	return LoginSuccessMessage, nil
}

// Register posts the create-account payload to the endpoint for the given
// role. Registration never authenticates the user; failures map to the
// fixed registration message.
func (a *AuthClient) Register(ctx context.Context, request RegistrationRequest, role Role) (string, error) {
	if err := request.Validate(); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	if !a.inFlight.CompareAndSwap(false, true) {
		return "", ErrRequestInFlight
	}
	defer a.inFlight.Store(false)

	path := a.cfg.GetRegisterPath(role)
	if path == "" {
		// Unrecognized roles submit to the student endpoint.
		path = a.cfg.GetRegisterPath(RoleStudent)
	}

	if a.cfg.GetDebug() {
		a.logger.Debug("registration payload for %s: %s", role, print.MaybePrettyJSON(request))
	}

	if err := a.post(ctx, path, request, nil); err != nil {
		a.logger.Info("registration rejected: %v", err)
		return "", ErrRegistrationRejected
	}

	return RegisterSuccessMessage, nil
}

// BearerToken returns the stored raw token for authorized platform calls.
func (a *AuthClient) BearerToken() (string, error) {
	return a.store.Load()
}

// AuthorizeRequest attaches the stored token as a bearer header.
func (a *AuthClient) AuthorizeRequest(req *http.Request) error {
	token, err := a.store.Load()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// post performs a JSON POST and decodes the response into result. Any
// status outside 2xx is an error.
func (a *AuthClient) post(ctx context.Context, path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.GetBaseURL()+path, bytes.NewReader(data))
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return goerrors.New(
			fmt.Sprintf("server returned status %d", resp.StatusCode),
			goerrors.CategoryOperation,
		).WithMetadata(map[string]any{
			"status": resp.StatusCode,
			"body":   string(respBody),
		})
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to decode response")
		}
	}

	return nil
}
