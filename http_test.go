package userdir_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/mlemos/userdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app     *fiber.App
	users   userdir.Users
	vip     *userdir.User
	premium *userdir.User
}

func newTestApp(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	users := userdir.NewUsersRepository(db)
	provider := userdir.NewUserProvider(users)
	auther := userdir.NewAuthenticator(provider, testConfig{
		signingKey: "SOME_SUPER_SECRET_KEY",
		expiration: 7 * 24 * 60 * 60,
	})

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	userdir.RegisterRoutes(app,
		userdir.WithUsers(users),
		userdir.WithProvider(provider),
		userdir.WithAuther(auther),
	)

	return &testEnv{
		app:     app,
		users:   users,
		vip:     seedUser(t, users, "vip", "vip@test.com", "test password", userdir.AccountVIP),
		premium: seedUser(t, users, "premium", "premium@test.com", "test password", userdir.AccountPremium),
	}
}

func (e *testEnv) request(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		// raw token, no scheme prefix
		req.Header.Set(fiber.HeaderAuthorization, token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload := decodeBody[map[string]string](t, resp)
	require.NotEmpty(t, payload["access_token"])
	return payload["access_token"]
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestPing(t *testing.T) {
	env := newTestApp(t)

	resp := env.request(t, http.MethodGet, "/ping", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
}

func TestListUsers(t *testing.T) {
	t.Run("missing token is rejected", func(t *testing.T) {
		env := newTestApp(t)

		resp := env.request(t, http.MethodGet, "/users", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		env := newTestApp(t)

		resp := env.request(t, http.MethodGet, "/users", nil, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("premium caller is rejected", func(t *testing.T) {
		env := newTestApp(t)
		token := env.login(t, "premium@test.com", "test password")

		resp := env.request(t, http.MethodGet, "/users", nil, token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("vip caller sees the directory", func(t *testing.T) {
		env := newTestApp(t)
		token := env.login(t, "vip@test.com", "test password")

		resp := env.request(t, http.MethodGet, "/users", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		records := decodeBody[[]map[string]any](t, resp)
		require.Len(t, records, 2)

		byEmail := map[string]map[string]any{}
		for _, r := range records {
			email, _ := r["email"].(string)
			byEmail[email] = r

			// exactly the public shape, never the hash
			assert.ElementsMatch(t,
				[]string{"id", "name", "email", "account_type"},
				mapKeys(r),
			)
		}

		assert.Equal(t, "VIP", byEmail["vip@test.com"]["account_type"])
		assert.Equal(t, "vip", byEmail["vip@test.com"]["name"])
		assert.Equal(t, "PREMIUM", byEmail["premium@test.com"]["account_type"])
	})
}

func TestGetUser(t *testing.T) {
	t.Run("is public", func(t *testing.T) {
		env := newTestApp(t)

		resp := env.request(t, http.MethodGet, "/user/1", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		record := decodeBody[map[string]any](t, resp)
		assert.Equal(t, "vip@test.com", record["email"])
		assert.Equal(t, "VIP", record["account_type"])
		assert.NotContains(t, record, "password")
		assert.NotContains(t, record, "password_hash")
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		env := newTestApp(t)

		resp := env.request(t, http.MethodGet, "/user/999", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non numeric id is a 404", func(t *testing.T) {
		env := newTestApp(t)

		resp := env.request(t, http.MethodGet, "/user/bob", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("creates and lists the new user", func(t *testing.T) {
		env := newTestApp(t)

		resp := env.request(t, http.MethodPost, "/user", map[string]string{
			"name":         "new_user",
			"email":        "new@test.com",
			"password":     "test",
			"account_type": "PREMIUM",
		}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		token := env.login(t, "vip@test.com", "test password")
		listResp := env.request(t, http.MethodGet, "/users", nil, token)
		require.Equal(t, http.StatusOK, listResp.StatusCode)

		records := decodeBody[[]map[string]any](t, listResp)
		require.Len(t, records, 3)

		var created map[string]any
		for _, r := range records {
			if r["email"] == "new@test.com" {
				created = r
			}
		}
		require.NotNil(t, created)
		assert.Equal(t, "new_user", created["name"])
		assert.Equal(t, "PREMIUM", created["account_type"])
		assert.NotZero(t, created["id"])

		// the new credentials work
		env.login(t, "new@test.com", "test")
	})

	t.Run("unknown account type is a server error", func(t *testing.T) {
		env := newTestApp(t)

		resp := env.request(t, http.MethodPost, "/user", map[string]string{
			"name":         "nobody",
			"email":        "nobody@test.com",
			"password":     "test",
			"account_type": "PLATINUM",
		}, "")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("duplicate email is a server error", func(t *testing.T) {
		env := newTestApp(t)

		resp := env.request(t, http.MethodPost, "/user", map[string]string{
			"name":         "copycat",
			"email":        "vip@test.com",
			"password":     "test",
			"account_type": "VIP",
		}, "")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	t.Run("issues a token for valid credentials", func(t *testing.T) {
		env := newTestApp(t)
		token := env.login(t, "vip@test.com", "test password")
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		env := newTestApp(t)

		wrongPw := env.request(t, http.MethodPost, "/login", map[string]string{
			"email":    "vip@test.com",
			"password": "wrong",
		}, "")
		unknown := env.request(t, http.MethodPost, "/login", map[string]string{
			"email":    "ghost@test.com",
			"password": "whatever",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, wrongPw.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)

		assert.Equal(t,
			decodeBody[map[string]string](t, wrongPw),
			decodeBody[map[string]string](t, unknown),
		)
	})
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
