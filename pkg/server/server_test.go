package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/signup/pkg/signup"
)

type recordingSink struct {
	mu    sync.Mutex
	forms []signup.FormState
	err   error
}

func (s *recordingSink) Submit(_ context.Context, form signup.FormState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms = append(s.forms, form)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

func testServer(t *testing.T, sink signup.Sink) (*Server, *httptest.Server) {
	t.Helper()
	config := DefaultConfig()
	config.Sink = sink
	config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	config.Form.FocusDelay = 10 * time.Millisecond

	srv := New(config)
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		srv.Shutdown(context.Background())
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(u, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

type message struct {
	Type          string            `json:"type"`
	Errors        map[string]string `json:"errors"`
	Violations    map[string]string `json:"violations"`
	Strength      signup.Strength   `json:"strength"`
	StrengthLabel string            `json:"strengthLabel"`
	Valid         bool              `json:"valid"`
	Target        string            `json:"target"`
	Code          string            `json:"code"`
}

func readMessage(t *testing.T, conn *websocket.Conn) message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var m message
	if err := conn.ReadJSON(&m); err != nil {
		t.Fatalf("read: %v", err)
	}
	return m
}

func send(t *testing.T, conn *websocket.Conn, kind, field, value string) {
	t.Helper()
	err := conn.WriteJSON(map[string]string{"kind": kind, "field": field, "value": value})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLiveSessionRoundTrip(t *testing.T) {
	sink := &recordingSink{}
	srv, ts := testServer(t, sink)
	conn := dial(t, ts, nil)

	if m := readMessage(t, conn); m.Type != TypeState || m.Valid {
		t.Fatalf("expected initial invalid state, got %+v", m)
	}

	steps := []struct{ kind, field, value string }{
		{"change", "email", "user@example.com"},
		{"blur", "email", "user@example.com"},
		{"change", "password", "Abcdef12!"},
		{"blur", "password", "Abcdef12!"},
	}
	for _, step := range steps {
		send(t, conn, step.kind, step.field, step.value)
		if m := readMessage(t, conn); m.Type != TypeState || m.Valid || len(m.Errors) != 0 {
			t.Fatalf("after %s %s: unexpected %+v", step.kind, step.field, m)
		}
	}

	// The confirmation is only compared on blur, but a matching value
	// already makes the form valid.
	send(t, conn, "change", "repeatPassword", "Abcdef12!")
	m := readMessage(t, conn)
	if m.Type != TypeState || !m.Valid {
		t.Fatalf("expected valid state, got %+v", m)
	}
	if m.Strength.Tier != signup.TierStrong || m.StrengthLabel != "Сильный" {
		t.Errorf("unexpected strength %+v %q", m.Strength, m.StrengthLabel)
	}

	if m := readMessage(t, conn); m.Type != TypeFocus || m.Target != signup.FocusSubmit {
		t.Fatalf("expected focus message, got %+v", m)
	}

	send(t, conn, "submit", "", "")
	if m := readMessage(t, conn); m.Type != TypeSubmitted {
		t.Fatalf("expected submitted, got %+v", m)
	}
	if m := readMessage(t, conn); m.Type != TypeState {
		t.Fatalf("expected state after submit, got %+v", m)
	}
	if sink.count() != 1 || sink.forms[0].Email != "user@example.com" {
		t.Errorf("unexpected sink forms %+v", sink.forms)
	}
	if srv.SessionCount() != 1 {
		t.Errorf("expected 1 session, got %d", srv.SessionCount())
	}
}

func TestLiveSessionLocalizedErrors(t *testing.T) {
	_, ts := testServer(t, &recordingSink{})
	conn := dial(t, ts, http.Header{"Accept-Language": {"en-US,en;q=0.9"}})
	readMessage(t, conn)

	send(t, conn, "blur", "email", "")
	m := readMessage(t, conn)
	if m.Errors["email"] != "Enter a valid email address" {
		t.Errorf("expected English email error, got %+v", m.Errors)
	}
	if m.Violations["email"] != string(signup.EmailInvalid) {
		t.Errorf("expected violation key, got %+v", m.Violations)
	}
}

func TestLiveSessionRejectsSubmitWhenInvalid(t *testing.T) {
	sink := &recordingSink{}
	_, ts := testServer(t, sink)
	conn := dial(t, ts, nil)
	readMessage(t, conn)

	send(t, conn, "submit", "", "")
	if m := readMessage(t, conn); m.Type != TypeError || m.Code != "E303" {
		t.Fatalf("expected E303, got %+v", m)
	}
	if sink.count() != 0 {
		t.Error("sink should not be called")
	}
}

func TestLiveSessionBadFrames(t *testing.T) {
	_, ts := testServer(t, &recordingSink{})
	conn := dial(t, ts, nil)
	readMessage(t, conn)

	tests := []struct {
		frame string
		code  string
	}{
		{`{`, "E300"},
		{`{"kind":"change","field":"username","value":"x"}`, "E301"},
		{`{"kind":"poke","field":"email"}`, "E302"},
	}
	for _, tt := range tests {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.frame)); err != nil {
			t.Fatal(err)
		}
		if m := readMessage(t, conn); m.Type != TypeError || m.Code != tt.code {
			t.Errorf("%s: expected %s, got %+v", tt.frame, tt.code, m)
		}
	}
}

func TestSetFormAppliesToNewSessions(t *testing.T) {
	srv, ts := testServer(t, &recordingSink{})

	rules := signup.DefaultRules()
	rules.MaxEmailLength = 5
	srv.SetForm(FormSettings{Reducer: signup.NewReducer(rules)})

	conn := dial(t, ts, nil)
	readMessage(t, conn)
	send(t, conn, "change", "email", "abcdefg")
	if m := readMessage(t, conn); m.Violations["email"] != string(signup.EmailTooLong) {
		t.Errorf("expected too_long under the new rules, got %+v", m.Violations)
	}
	if srv.Form().Catalog != signup.Russian() {
		t.Error("unset catalog should default to Russian")
	}
}

func TestSessionClosedOnDisconnect(t *testing.T) {
	srv, ts := testServer(t, &recordingSink{})
	conn := dial(t, ts, nil)
	readMessage(t, conn)
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for srv.SessionCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := srv.SessionCount(); n != 0 {
		t.Errorf("expected session to be removed, %d left", n)
	}
}

func TestPage(t *testing.T) {
	_, ts := testServer(t, &recordingSink{})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	html := string(body)
	for _, want := range []string{`<html lang="ru">`, "Зарегистрироваться", `src="/client.js"`, `name="repeatPassword"`, "disabled"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in page", want)
		}
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/", nil)
	req.Header.Set("Accept-Language", "en")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `<html lang="en">`) {
		t.Error("expected an English page")
	}
	if resp.Header.Get("Content-Language") != "en" {
		t.Errorf("Content-Language = %q", resp.Header.Get("Content-Language"))
	}
}

func noRedirect(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

func TestPostFallback(t *testing.T) {
	sink := &recordingSink{}
	_, ts := testServer(t, sink)
	client := &http.Client{CheckRedirect: noRedirect}

	resp, err := client.PostForm(ts.URL+"/", url.Values{
		"email":          {"user@example.com"},
		"password":       {"Abcdef12!"},
		"repeatPassword": {"Abcdef12"},
	})
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Пароли не совпадают") {
		t.Error("expected the mismatch error in the page")
	}
	if strings.Contains(string(body), "Abcdef12") {
		t.Error("passwords must not be echoed")
	}

	resp, err = client.PostForm(ts.URL+"/", url.Values{
		"email":          {"user@example.com"},
		"password":       {"Abcdef12!"},
		"repeatPassword": {"Abcdef12!"},
	})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if sink.count() != 1 {
		t.Errorf("expected one submission, got %d", sink.count())
	}
}

func TestPostFallbackSinkError(t *testing.T) {
	_, ts := testServer(t, &recordingSink{err: io.ErrUnexpectedEOF})

	resp, err := http.PostForm(ts.URL+"/", url.Values{
		"email":          {"user@example.com"},
		"password":       {"Abcdef12!"},
		"repeatPassword": {"Abcdef12!"},
	})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestHealthzMetricsAndClient(t *testing.T) {
	_, ts := testServer(t, &recordingSink{})

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz: %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "signup_http_requests_total") {
		t.Error("expected request counter in /metrics")
	}

	resp, err = http.Get(ts.URL + ClientPath)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	etag := resp.Header.Get("ETag")
	if etag == "" || !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/javascript") {
		t.Fatalf("unexpected client headers %v", resp.Header)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+ClientPath, nil)
	req.Header.Set("If-None-Match", etag)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotModified {
		t.Errorf("expected 304, got %d", resp.StatusCode)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	config := DefaultConfig()
	config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(config)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestSameOriginCheck(t *testing.T) {
	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://example.com", true},
		{"http://evil.com", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "http://example.com/live", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := SameOriginCheck(r); got != tt.want {
			t.Errorf("origin %q: got %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestStateMessageJSON(t *testing.T) {
	s := signup.State{
		Form:     signup.FormState{Password: "abc"},
		Errors:   signup.ErrorState{Password: signup.PasswordTooShort},
		Strength: signup.CalculateStrength("abc"),
	}
	data, err := json.Marshal(stateMessage(s, signup.English()))
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{`"type":"state"`, `"password":"Password is too short"`, `"password":"password.too_short"`, `"valid":false`} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s in %s", want, got)
		}
	}
	if strings.Contains(got, `"abc"`) {
		t.Error("state message must not carry field values")
	}
}
