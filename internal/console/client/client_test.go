package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiquitav2/user-console/pkg/api"
	"github.com/chiquitav2/user-console/pkg/errors"
	"github.com/chiquitav2/user-console/pkg/logger"
)

// doerFunc adapts a function into a mock transport
type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, logger.NewDiscard())
}

func TestRequest_DefaultsToGETAndReturnsEnvelope(t *testing.T) {
	var gotMethod, gotPath string
	c := NewClient("http://console.test", logger.NewDiscard(), WithHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		gotMethod = req.Method
		gotPath = req.URL.Path
		return jsonResponse(http.StatusOK, `{"success":true,"data":[{"id":1,"name":"ROLE_ADMIN"}]}`), nil
	})))

	resp, err := Request[[]api.Role](context.Background(), c, "/api/roles", nil)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/api/roles", gotPath)
	assert.True(t, resp.Success)
	assert.Equal(t, []api.Role{{ID: 1, Name: "ROLE_ADMIN"}}, resp.Data)
}

func TestRequest_SuccessFalseOn2xxIsReturnedToCaller(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"success":false,"message":"Email already exists"}`)
	})

	resp, err := c.UpdateUser(context.Background(), 3, &api.UserRequest{Email: "a@b.c"})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.False(t, resp.Success)
	assert.Equal(t, "Email already exists", resp.Message)

	_, err = resp.Result()
	require.Error(t, err)
	assert.Equal(t, "Email already exists", err.Error())
	assert.Equal(t, errors.DomainApplication, errors.GetErrorDomain(err))
}

func TestRequest_HTTPFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"envelope message", http.StatusNotFound, `{"success":false,"message":"User not found"}`, "User not found"},
		{"envelope without message", http.StatusInternalServerError, `{"success":false}`, "HTTP error: status 500"},
		{"non-json body", http.StatusBadGateway, `<html>bad gateway</html>`, "HTTP error: status 502"},
		{"empty body", http.StatusForbidden, ``, "HTTP error: status 403"},
		{"redirect is not success", http.StatusNotModified, ``, "HTTP error: status 304"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient("http://console.test", logger.NewDiscard(), WithHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(tt.status, tt.body), nil
			})))

			resp, err := Request[any](context.Background(), c, "/api/users", nil)

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, tt.status, errors.StatusCode(err))
			assert.Equal(t, errors.DomainHTTP, errors.GetErrorDomain(err))
		})
	}
}

func TestRequest_DeleteMissingUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/users/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(api.Response[any]{Success: false, Message: "User not found"})
	})

	resp, err := Request[string](context.Background(), c, "/api/users/7", &RequestOptions{Method: "DELETE"})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "User not found", err.Error())
	assert.True(t, errors.IsErrorCode(err, errors.ErrCodeNotFound))
}

func TestRequest_TransportFailures(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		c := NewClient(url, logger.NewDiscard())
		_, err := c.ListUsers(context.Background())

		require.Error(t, err)
		assert.Equal(t, errors.DomainTransport, errors.GetErrorDomain(err))
		assert.True(t, errors.IsRetryable(err))
		assert.True(t, strings.HasPrefix(err.Error(), "failed to make request: "))
	})

	t.Run("mock transport error carries cause", func(t *testing.T) {
		cause := fmt.Errorf("dial tcp: i/o timeout")
		c := NewClient("http://console.test", logger.NewDiscard(), WithHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
			return nil, cause
		})))

		_, err := c.ListRoles(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, errors.ErrCodeNetwork, errors.GetErrorCode(err))
	})

	t.Run("malformed json on success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"success":tru`)
		})

		_, err := c.ListRoles(context.Background())

		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeMalformedResponse, errors.GetErrorCode(err))
		assert.Contains(t, err.Error(), "failed to decode API response")
	})

	t.Run("empty body on success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		_, err := c.DeletePhoto(context.Background())

		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeMalformedResponse, errors.GetErrorCode(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"success":true}`)
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.CurrentUser(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRequest_UnsupportedMethod(t *testing.T) {
	called := false
	c := NewClient("http://console.test", logger.NewDiscard(), WithHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{"success":true}`), nil
	})))

	_, err := Request[any](context.Background(), c, "/api/users", &RequestOptions{Method: "TRACE"})

	require.Error(t, err)
	assert.False(t, called)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetErrorCode(err))

	_, err = Request[any](context.Background(), c, "/api/users", &RequestOptions{Method: "put"})
	require.NoError(t, err)
}

func TestHeaders_DefaultsAndOverrides(t *testing.T) {
	var got http.Header
	c := NewClient("http://console.test", logger.NewDiscard(), WithHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		got = req.Header.Clone()
		return jsonResponse(http.StatusOK, `{"success":true}`), nil
	})))

	_, err := Request[any](context.Background(), c, "/api/users", nil)
	require.NoError(t, err)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Empty(t, got.Get("Authorization"))

	_, err = Request[any](context.Background(), c, "/api/users", &RequestOptions{
		Headers: map[string]string{"content-type": "text/plain", "X-Trace": "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"text/plain"}, got.Values("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "1", got.Get("X-Trace"))

	// per-call overrides never leak into the defaults
	assert.Equal(t, "application/json", c.DefaultHeaders()["Content-Type"])
	_, hasTrace := c.DefaultHeaders()["X-Trace"]
	assert.False(t, hasTrace)
}

func TestAuthToken(t *testing.T) {
	var got http.Header
	c := NewClient("http://console.test", logger.NewDiscard(), WithHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		got = req.Header.Clone()
		return jsonResponse(http.StatusOK, `{"success":true}`), nil
	})))
	ctx := context.Background()

	c.SetAuthToken("abc")
	_, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", got.Get("Authorization"))

	c.SetAuthToken("def")
	_, err = c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer def"}, got.Values("Authorization"))

	c.ClearAuthToken()
	_, err = c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Values("Authorization"))

	// clearing twice is harmless
	c.ClearAuthToken()

	c.SetAuthToken("abc")
	c.SetAuthToken("")
	_, err = c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Values("Authorization"))
}

func TestConcurrentRequestsAreIndependent(t *testing.T) {
	usersReleased := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users":
			// hold the users call until roles has finished
			<-usersReleased
			fmt.Fprint(w, `{"success":true,"data":[{"id":7,"email":"a@b.c","roles":["ROLE_USER"]}]}`)
		case "/api/roles":
			fmt.Fprint(w, `{"success":true,"data":[{"id":1,"name":"ROLE_ADMIN"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	c.SetAuthToken("abc")

	var wg sync.WaitGroup
	var users *api.Response[[]api.User]
	var roles *api.Response[[]api.Role]
	var usersErr, rolesErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		users, usersErr = c.ListAllUsers(context.Background())
	}()
	go func() {
		defer wg.Done()
		defer close(usersReleased)
		roles, rolesErr = c.ListAllRoles(context.Background())
	}()
	wg.Wait()

	require.NoError(t, usersErr)
	require.NoError(t, rolesErr)
	require.Len(t, users.Data, 1)
	require.Len(t, roles.Data, 1)
	assert.Equal(t, int64(7), users.Data[0].ID)
	assert.Equal(t, "ROLE_ADMIN", roles.Data[0].Name)
	assert.Equal(t, "Bearer abc", c.DefaultHeaders()["Authorization"])
}

func TestTokenChangesDuringConcurrentRequests(t *testing.T) {
	c := NewClient("http://console.test", logger.NewDiscard(), WithHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		auth := req.Header.Get("Authorization")
		if auth != "" && !strings.HasPrefix(auth, "Bearer ") {
			return jsonResponse(http.StatusBadRequest, `{"success":false,"message":"bad auth"}`), nil
		}
		return jsonResponse(http.StatusOK, `{"success":true}`), nil
	})))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				c.SetAuthToken(fmt.Sprintf("token-%d", i))
			} else {
				c.ClearAuthToken()
			}
		}(i)
		go func() {
			defer wg.Done()
			_, err := Request[any](context.Background(), c, "/api/users/current", nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestNewClient_Options(t *testing.T) {
	c := NewClient(" http://console.test/ ", nil, WithTimeout(5*time.Second), WithHeader("x-client", "cli"))

	assert.Equal(t, "http://console.test", c.BaseURL())
	assert.Equal(t, "cli", c.DefaultHeaders()["X-Client"])
	hc, ok := c.httpClient.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, hc.Timeout)
}
