package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"wiutctl/pkg/timetable"
)

const landingPage = `<html><body>
<select class="dropdown1" name="classid">
  <option value="">-- select --</option>
  <option value="101">4BIS1</option>
  <option value="102"> 4BIS2 </option>
  <option value="201">3BABM1</option>
</select>
</body></html>`

const sessionCookie = "ASPXAUTH"

// intranet mimics the login flow and timetable pages of the university intranet.
func intranet(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc(loginPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if r.URL.Query().Get("ReturnUrl") != "/" {
				t.Errorf("unexpected ReturnUrl %q", r.URL.Query().Get("ReturnUrl"))
			}
			if r.FormValue("UserID") == "student" && r.FormValue("Password") == "secret" {
				http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "ok", Path: "/"})
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
		}
		w.Write([]byte(`<html><body><form id="login"></form></body></html>`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>home</body></html>`))
	})
	mux.HandleFunc(timetablePath, func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if c, err := r.Cookie(sessionCookie); err != nil || c.Value != "ok" {
			http.Redirect(w, r, loginPath, http.StatusFound)
			return
		}
		switch r.URL.Query().Get("classid") {
		case "":
			w.Write([]byte(landingPage))
		case "101":
			w.Write([]byte(timetablePage(mondayRow, tuesdayRow)))
		case "503":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.Write([]byte(timetablePage()))
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	originalBaseURL := baseURL
	baseURL = server.URL
	t.Cleanup(func() { baseURL = originalBaseURL })

	return server
}

func testClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(ClientConfig{NoCache: true, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	return client
}

func TestClient_Login(t *testing.T) {
	intranet(t, nil)
	client := testClient(t)

	err := client.Login(context.Background(), "student", "secret")
	require.NoError(t, err)

	groups, err := client.FetchGroups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, groups.Len())
}

func TestClient_LoginRejected(t *testing.T) {
	intranet(t, nil)
	client := testClient(t)

	err := client.Login(context.Background(), "student", "wrong")
	assert.True(t, errors.Is(err, ErrLoginRejected), "got %v", err)

	err = client.Login(context.Background(), "", "")
	assert.True(t, errors.Is(err, ErrLoginRejected), "got %v", err)
}

func TestClient_NotLoggedIn(t *testing.T) {
	intranet(t, nil)
	client := testClient(t)

	_, err := client.FetchDocument(context.Background(), "101")
	assert.True(t, errors.Is(err, ErrNotLoggedIn), "got %v", err)
}

func TestClient_FetchTimetable(t *testing.T) {
	intranet(t, nil)
	client := testClient(t)
	require.NoError(t, client.Login(context.Background(), "student", "secret"))

	week, err := client.FetchTimetable(context.Background(), "101", timetable.Builder{})
	require.NoError(t, err)
	require.Len(t, week.Monday, 1)
	assert.Equal(t, "Econ101", week.Monday[0].Name)
	assert.Equal(t, timetable.Hours(2), week.Monday[0].Length)
}

func TestClient_FetchTimetableUsesCache(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	var hits int32
	intranet(t, &hits)
	client, err := NewClient(ClientConfig{Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	require.NoError(t, client.Login(context.Background(), "student", "secret"))

	first, err := client.FetchTimetable(context.Background(), "101", timetable.Builder{})
	require.NoError(t, err)
	second, err := client.FetchTimetable(context.Background(), "101", timetable.Builder{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestClient_RetriesTransientErrors(t *testing.T) {
	var hits int32
	intranet(t, &hits)
	client := testClient(t)
	require.NoError(t, client.Login(context.Background(), "student", "secret"))

	_, err := client.FetchDocument(context.Background(), "503")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "503"), err.Error())
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestClient_PacesRequests(t *testing.T) {
	intranet(t, nil)
	client, err := NewClient(ClientConfig{Delay: 100 * time.Millisecond, NoCache: true})
	require.NoError(t, err)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_ = client.Login(context.Background(), "student", "secret")
	}
	// The first request goes out immediately, the next two wait their turn.
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}

func TestClient_PaceHonoursContext(t *testing.T) {
	client, err := NewClient(ClientConfig{Delay: time.Hour, NoCache: true})
	require.NoError(t, err)

	require.NoError(t, client.pace(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, client.pace(ctx))
}
