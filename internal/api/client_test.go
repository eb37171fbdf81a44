package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func testClient(baseURL string) *Client {
	return NewClient(DefaultClientConfig(baseURL, "test-device"))
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(&ClientConfig{BaseURL: "http://localhost"})

	if client.config.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultTimeout, client.config.Timeout)
	}
	if client.limiter == nil {
		t.Error("limiter is nil")
	}
	if client.httpClient == nil {
		t.Error("httpClient is nil")
	}
}

func TestGet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/categoryMood" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"categoryId":1,"categoryDescription":"Emotion"}]`))
	}))
	defer server.Close()

	type row struct {
		CategoryID          int    `json:"categoryId"`
		CategoryDescription string `json:"categoryDescription"`
	}

	result := Get[[]row](context.Background(), testClient(server.URL), "/categoryMood", nil)
	if !result.Success {
		t.Fatalf("Expected success, got failure: %s", result.Message)
	}
	if len(result.Data) != 1 || result.Data[0].CategoryDescription != "Emotion" {
		t.Errorf("Unexpected data: %+v", result.Data)
	}
}

func TestDo_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	result := Get[map[string]any](context.Background(), testClient(server.URL), "/categoryMood", nil)
	if result.Success {
		t.Fatal("Expected failure for HTTP 500")
	}
	if result.Message != "HTTP 500: Internal Server Error" {
		t.Errorf("Unexpected message: %q", result.Message)
	}
}

func TestDo_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	start := time.Now()
	result := Get[map[string]any](context.Background(), testClient(server.URL), "/slow",
		&RequestOptions{Timeout: 1 * time.Millisecond})
	elapsed := time.Since(start)

	if result.Success {
		t.Fatal("Expected failure for timed-out request")
	}
	if !strings.Contains(strings.ToLower(result.Message), "timeout") {
		t.Errorf("Expected timeout message, got %q", result.Message)
	}
	// Must resolve well before the handler's 200ms sleep completes.
	if elapsed > 150*time.Millisecond {
		t.Errorf("Timed-out request took %v to resolve", elapsed)
	}
}

func TestDo_NetworkFailure(t *testing.T) {
	// Port 0 is never listening.
	result := Get[map[string]any](context.Background(), testClient("http://127.0.0.1:0"), "/x", nil)
	if result.Success {
		t.Fatal("Expected failure for unreachable host")
	}
	if result.Message == "" {
		t.Error("Failure message is empty")
	}
}

func TestDo_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{invalid json}`))
	}))
	defer server.Close()

	result := Get[map[string]any](context.Background(), testClient(server.URL), "/x", nil)
	if result.Success {
		t.Fatal("Expected failure for invalid JSON")
	}
}

func TestDo_ApplicationLevelFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":false,"message":"unknown user"}`))
	}))
	defer server.Close()

	result := Get[map[string]any](context.Background(), testClient(server.URL), "/x", nil)
	if result.Success {
		t.Fatal("Expected failure for success:false payload")
	}
	if result.Message != "unknown user" {
		t.Errorf("Expected server message, got %q", result.Message)
	}
}

func TestDo_DefaultHeaders(t *testing.T) {
	var deviceID, contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceID = r.Header.Get(DeviceIDHeader)
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	Post[map[string]any](context.Background(), testClient(server.URL), "/x", map[string]int{"a": 1}, nil)

	if deviceID != "test-device" {
		t.Errorf("Expected device ID header 'test-device', got %q", deviceID)
	}
	if contentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", contentType)
	}
}

func TestDo_HeaderOverride(t *testing.T) {
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	Get[map[string]any](context.Background(), testClient(server.URL), "/x",
		&RequestOptions{Headers: map[string]string{"Content-Type": "text/plain"}})

	if contentType != "text/plain" {
		t.Errorf("Call-specific header should win, got %q", contentType)
	}
}

func TestDo_QueryParams(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	opts := &RequestOptions{Query: map[string][]string{"userId": {"u1"}, "noteName": {"rose"}}}
	Del[map[string]any](context.Background(), testClient(server.URL), "/perfume/note", opts)

	if !strings.Contains(query, "userId=u1") || !strings.Contains(query, "noteName=rose") {
		t.Errorf("Unexpected query string: %q", query)
	}
}

// A config reload swaps the base URL from the watcher goroutine while the
// main goroutine keeps issuing requests. Run with -race.
func TestSetBaseURL_ConcurrentWithRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(&ClientConfig{
		BaseURL:   server.URL,
		DeviceID:  "test-device",
		RateLimit: 1000,
	})

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				client.SetBaseURL(server.URL)
			}
		}
	}()

	for i := 0; i < 50; i++ {
		result := Get[map[string]any](context.Background(), client, "/categoryMood", nil)
		if !result.Success {
			t.Fatalf("Request failed during reload: %s", result.Message)
		}
	}
	close(done)
	wg.Wait()

	if client.BaseURL() != server.URL {
		t.Errorf("BaseURL = %q, want %q", client.BaseURL(), server.URL)
	}
}

func TestNarrow(t *testing.T) {
	ok := Narrow(Ok(5), func(n int) string { return strings.Repeat("x", n) })
	if !ok.Success || ok.Data != "xxxxx" {
		t.Errorf("Unexpected narrowed result: %+v", ok)
	}

	fail := Narrow(Fail[int]("boom"), func(n int) string { return "" })
	if fail.Success || fail.Message != "boom" {
		t.Errorf("Failure should pass through: %+v", fail)
	}
}
