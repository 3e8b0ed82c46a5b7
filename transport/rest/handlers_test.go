package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-widget/internal/broker"
	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
	"github.com/rocketscienceinc/tictactoe-widget/internal/repository"
	"github.com/rocketscienceinc/tictactoe-widget/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-widget/internal/widget"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repository.NewMemorySessionRepository(time.Hour)
	gameUseCase := usecase.NewGameUseCase(logger, repo, broker.New(), entity.ThemeLight)

	srv := httptest.NewServer(NewRouter(logger, gameUseCase, nil))
	t.Cleanup(srv.Close)

	return srv
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, data
}

func decodeView(t *testing.T, data []byte) widget.View {
	t.Helper()

	var view widget.View
	require.NoError(t, json.Unmarshal(data, &view))

	return view
}

func createSession(t *testing.T, srv *httptest.Server) widget.View {
	t.Helper()

	resp, data := doRequest(t, http.MethodPost, srv.URL+"/api/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return decodeView(t, data)
}

func TestPing(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doRequest(t, http.MethodGet, srv.URL+"/ping", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(data))
}

func TestCreateSession(t *testing.T) {
	srv := newTestServer(t)

	// When: a session is created
	view := createSession(t, srv)

	// Then: it is a fresh game
	assert.NotEmpty(t, view.SessionID)
	assert.Equal(t, "Turn: X", view.Status)
	assert.Equal(t, entity.ThemeLight, view.Theme)

	// Then: it can be fetched
	resp, data := doRequest(t, http.MethodGet, srv.URL+"/api/sessions/"+view.SessionID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, view, decodeView(t, data))
}

func TestMakeTurn(t *testing.T) {
	t.Run("Plays a full winning game", func(t *testing.T) {
		srv := newTestServer(t)
		session := createSession(t, srv)
		movesURL := srv.URL + "/api/sessions/" + session.SessionID + "/moves"

		var view widget.View
		for _, cell := range []string{"0", "4", "1", "5", "2"} {
			resp, data := doRequest(t, http.MethodPost, movesURL, `{"cell":`+cell+`}`)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			view = decodeView(t, data)
		}

		assert.Equal(t, "X wins!", view.Status)
		assert.Equal(t, "win", view.StatusClass)

		// When: a move after the win
		resp, data := doRequest(t, http.MethodPost, movesURL, `{"cell":3}`)

		// Then: the board is unchanged
		require.Equal(t, http.StatusOK, resp.StatusCode)
		after := decodeView(t, data)
		assert.Equal(t, view.Cells, after.Cells)
		assert.Empty(t, after.Cells[3].Value)
	})

	t.Run("Rejects a missing cell", func(t *testing.T) {
		srv := newTestServer(t)
		session := createSession(t, srv)

		resp, _ := doRequest(t, http.MethodPost, srv.URL+"/api/sessions/"+session.SessionID+"/moves", `{}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Rejects a malformed body", func(t *testing.T) {
		srv := newTestServer(t)
		session := createSession(t, srv)

		resp, _ := doRequest(t, http.MethodPost, srv.URL+"/api/sessions/"+session.SessionID+"/moves", `not json`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Rejects an out of range cell", func(t *testing.T) {
		srv := newTestServer(t)
		session := createSession(t, srv)

		resp, data := doRequest(t, http.MethodPost, srv.URL+"/api/sessions/"+session.SessionID+"/moves", `{"cell":9}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(data), "invalid cell index")
	})

	t.Run("Unknown session is 404", func(t *testing.T) {
		srv := newTestServer(t)

		resp, _ := doRequest(t, http.MethodPost, srv.URL+"/api/sessions/missing/moves", `{"cell":0}`)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRestartAndTheme(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv)
	base := srv.URL + "/api/sessions/" + session.SessionID

	// Given: one move played
	resp, _ := doRequest(t, http.MethodPost, base+"/moves", `{"cell":4}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// When: toggling the theme
	resp, data := doRequest(t, http.MethodPost, base+"/theme", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeView(t, data)

	// Then: the theme is dark and the move is still there
	assert.Equal(t, entity.ThemeDark, view.Theme)
	assert.Equal(t, "☀️ Light", view.ThemeToggle)
	assert.Equal(t, "X", view.Cells[4].Value)

	// When: restarting
	resp, data = doRequest(t, http.MethodPost, base+"/restart", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = decodeView(t, data)

	// Then: the board is empty and the theme is kept
	assert.Equal(t, "Turn: X", view.Status)
	assert.Empty(t, view.Cells[4].Value)
	assert.Equal(t, entity.ThemeDark, view.Theme)
}

func TestEndSession(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv)
	base := srv.URL + "/api/sessions/" + session.SessionID

	// When: the page ends its session
	resp, data := doRequest(t, http.MethodDelete, base, "")

	// Then: nothing is returned and the session is gone
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, data)

	resp, _ = doRequest(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// When: ending it again
	resp, _ = doRequest(t, http.MethodDelete, base, "")

	// Then: it is unknown
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPage(t *testing.T) {
	srv := newTestServer(t)

	// When: the page is loaded twice
	resp, first := doRequest(t, http.MethodGet, srv.URL+"/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, second := doRequest(t, http.MethodGet, srv.URL+"/", "")

	// Then: it renders the widget
	page := string(first)
	assert.Contains(t, page, "Tic Tac Toe")
	assert.Contains(t, page, "Turn: X")
	assert.Contains(t, page, `aria-label="Square 9"`)
	assert.Contains(t, page, `data-theme="light"`)
	assert.Contains(t, page, "#3b82f6")

	// Then: every load gets its own session
	assert.NotEqual(t, sessionAttr(t, page), sessionAttr(t, string(second)))
}

func TestStatic(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doRequest(t, http.MethodGet, srv.URL+"/static/app.js", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "game:turn")
}

func sessionAttr(t *testing.T, page string) string {
	t.Helper()

	const marker = `data-session="`
	start := strings.Index(page, marker)
	require.GreaterOrEqual(t, start, 0)

	rest := page[start+len(marker):]
	end := strings.Index(rest, `"`)
	require.Positive(t, end)

	return rest[:end]
}
