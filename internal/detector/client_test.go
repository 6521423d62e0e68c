package detector

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTerminateSendsCameraName(t *testing.T) {
	var gotPath, gotName string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("unmarshal terminate body: %v", err)
		}
		gotName = payload["cameraName"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if err := c.Terminate(context.Background(), "Cam-1"); err != nil {
		t.Fatalf("terminate: %v", err)
	}
	if gotPath != "/terminate" {
		t.Errorf("path = %q, want /terminate", gotPath)
	}
	if gotName != "Cam-1" {
		t.Errorf("cameraName = %q, want Cam-1", gotName)
	}
}

func TestTerminateNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if err := c.Terminate(context.Background(), "Cam-1"); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestTerminateConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	c := New(srv.URL, time.Second)
	if err := c.Terminate(context.Background(), "Cam-1"); err == nil {
		t.Fatal("expected error when service is unreachable")
	}
}

func TestTerminateBoundedByTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		srv.Close()
	}()

	c := New(srv.URL, 100*time.Millisecond)

	start := time.Now()
	err := c.Terminate(context.Background(), "Cam-1")
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed > time.Second {
		t.Errorf("terminate took %v, caller was not released at the timeout", elapsed)
	}
}
