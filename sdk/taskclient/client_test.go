package taskclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrazmi/taskline/sdk/taskclient"
)

func TestAPIErrorParsing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("Expected bearer header, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"not_found","message":"task not found"}`))
	}))
	defer srv.Close()

	c := taskclient.New(srv.URL)
	_, err := c.GetTask(context.Background(), &taskclient.Session{Token: "tok"}, "abc")

	var apiErr *taskclient.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Code != "not_found" || apiErr.Message != "task not found" {
		t.Errorf("Unexpected error %+v", apiErr)
	}
	if !taskclient.IsNotFound(err) {
		t.Error("Expected IsNotFound to be true")
	}
}

func TestCallsRequireSession(t *testing.T) {
	c := taskclient.New("http://127.0.0.1:0")

	if _, err := c.ListTasks(context.Background(), nil); !errors.Is(err, taskclient.ErrNoSession) {
		t.Errorf("Expected ErrNoSession, got %v", err)
	}
	if _, err := c.Timeline(context.Background(), &taskclient.Session{}); !errors.Is(err, taskclient.ErrNoSession) {
		t.Errorf("Expected ErrNoSession for an empty session, got %v", err)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := &taskclient.Session{Token: "tok", User: taskclient.User{ID: "u1"}}
	err := taskclient.New(srv.URL).Logout(context.Background(), s)
	if err == nil {
		t.Error("Expected the server error to be returned")
	}
	if s.Active() {
		t.Error("Expected session to be cleared even when the server fails")
	}
}

func TestLocalTimeline(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	tasks := []taskclient.Task{
		{ID: "a", StartDate: day(1), EndDate: day(5)},
		{ID: "b", StartDate: day(3), EndDate: day(10)},
	}

	chart := taskclient.LocalTimeline(tasks, day(20))
	if chart.Axis == nil || !chart.Axis.MinDate.Equal(day(1)) {
		t.Fatalf("Unexpected axis %+v", chart.Axis)
	}
	if len(chart.Bars) != 2 || chart.Bars[0].OffsetPercent != 0 {
		t.Errorf("Unexpected bars %+v", chart.Bars)
	}
	if chart.Today != nil {
		t.Errorf("Expected no today marker after the axis, got %v", *chart.Today)
	}
}
