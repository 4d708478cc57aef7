package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ligafantasy/portal/internal/domain/user"
	"github.com/ligafantasy/portal/internal/usecase"
)

type credentialsDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registrationDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the backend and captures the HTTP-only auth
// cookie the backend sets. The cookie is opaque to the portal; it is stored
// in the session and replayed on every later call.
func (c *Client) Login(ctx context.Context, creds usecase.Credentials) (user.User, string, error) {
	return c.authenticate(ctx, "/auth/login", credentialsDTO{
		Username: creds.Username,
		Password: creds.Password,
	})
}

// Register creates an account. The backend logs the new user in as part of
// registration, so the response carries the same cookie as a login.
func (c *Client) Register(ctx context.Context, reg usecase.Registration) (user.User, string, error) {
	return c.authenticate(ctx, "/auth/register", registrationDTO{
		Username: reg.Username,
		Email:    reg.Email,
		Password: reg.Password,
	})
}

// Logout clears the backend-side session. A failure here is not fatal to the
// caller: the portal session is destroyed regardless.
func (c *Client) Logout(ctx context.Context, cookie string) error {
	return c.sendJSON(ctx, request{
		method: http.MethodPost,
		path:   "/auth/logout",
		cookie: cookie,
	}, nil)
}

// authenticate needs the raw http.Response for the Set-Cookie header, so it
// drives the transport directly instead of going through sendJSON.
func (c *Client) authenticate(ctx context.Context, path string, payload any) (user.User, string, error) {
	raw, cookie, err := c.executeWithCookie(ctx, path, payload)
	if err != nil {
		return user.User{}, "", err
	}

	var dto userDTO
	if err := decodeTarget(raw, &dto); err != nil {
		return user.User{}, "", err
	}

	account := dto.toDomain()
	if err := account.Validate(); err != nil {
		return user.User{}, "", fmt.Errorf("backend returned malformed user: %w", err)
	}
	if cookie == "" {
		return user.User{}, "", fmt.Errorf("backend response did not set an auth cookie")
	}

	return account, cookie, nil
}

func (c *Client) executeWithCookie(ctx context.Context, path string, payload any) ([]byte, string, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return nil, "", fmt.Errorf("%w: backend is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	raw, cookie, err := c.attemptWithCookie(ctx, path, payload)
	if c.circuitEnabled {
		if err != nil && isTransient(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		if isTransient(err) {
			return nil, "", fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		// A 401 on login means bad credentials, not an expired portal
		// session.
		if strings.Contains(path, "/auth/") && isSessionExpired(err) {
			return nil, "", fmt.Errorf("%w: invalid credentials", usecase.ErrUnauthorized)
		}
		return nil, "", err
	}

	return raw, cookie, nil
}

func (c *Client) attemptWithCookie(ctx context.Context, path string, payload any) ([]byte, string, error) {
	httpReq, err := c.buildJSONRequest(ctx, http.MethodPost, c.baseURL+path, payload)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("%w: send request: %v", errBackendTransient, err)
	}
	defer resp.Body.Close()

	raw, err := readLimitedBody(resp)
	if err != nil {
		return nil, "", err
	}
	if err := c.mapStatus(resp.StatusCode, raw); err != nil {
		return nil, "", err
	}

	return raw, joinSetCookies(resp), nil
}

// joinSetCookies collapses the backend's Set-Cookie headers into a Cookie
// header value the client can replay.
func joinSetCookies(resp *http.Response) string {
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		if cookie.Name == "" {
			continue
		}
		pairs = append(pairs, cookie.Name+"="+cookie.Value)
	}

	return strings.Join(pairs, "; ")
}
