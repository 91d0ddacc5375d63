package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"montajbot/internal/lifecycle"
)

func TestClient_BearerAndIdempotenceHeaders(t *testing.T) {
	var gotAuth, gotIdem, gotGetIdem string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			gotAuth = r.Header.Get("Authorization")
			gotIdem = r.Header.Get("Idempotence-Key")
		case http.MethodGet:
			gotGetIdem = r.Header.Get("Idempotence-Key")
		}
		w.Write([]byte(`{"items":[],"total":0}`))
	}))
	defer srv.Close()

	c := New(srv.URL).WithToken("tok-123")
	if err := c.ArchiveTask(context.Background(), 1); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization: %q", gotAuth)
	}
	if gotIdem == "" {
		t.Fatal("mutating call must carry Idempotence-Key")
	}

	if _, err := c.ListTasks(context.Background(), lifecycle.RoleLogist); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotGetIdem != "" {
		t.Fatal("GET must not carry Idempotence-Key")
	}
}

func TestClient_WithTokenDoesNotMutateOriginal(t *testing.T) {
	c := New("http://example.invalid")
	bound := c.WithToken("tok")
	if c.token != "" {
		t.Fatal("WithToken must not mutate the shared client")
	}
	if bound.token != "tok" {
		t.Fatalf("bound token: %q", bound.token)
	}
}

func TestClient_APIErrorDetailString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"Задание уже принято другим монтажником"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).WithToken("t").AcceptTask(context.Background(), 5)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("status: %d", apiErr.StatusCode)
	}
	if apiErr.Detail != "Задание уже принято другим монтажником" {
		t.Fatalf("detail: %q", apiErr.Detail)
	}
}

func TestClient_APIErrorDetailValidationList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"msg":"field required"},{"msg":"value is not a valid integer"}]}`))
	}))
	defer srv.Close()

	err := New(srv.URL).WithToken("t").DeleteDraft(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Detail != "field required; value is not a valid integer" {
		t.Fatalf("detail: %q", apiErr.Detail)
	}
}

func TestPublishDraft_FailsWithoutID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).WithToken("t").PublishDraft(context.Background(), 9); err == nil {
		t.Fatal("publish must fail loudly when the response lacks a usable id")
	}
}

func TestPublishDraft_ReturnsNewTaskID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logist/drafts/9/publish" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":42}`))
	}))
	defer srv.Close()

	id, err := New(srv.URL).WithToken("t").PublishDraft(context.Background(), 9)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if id != 42 {
		t.Fatalf("id: %d", id)
	}
}

func TestEndpointsFor_TotalOverRoles(t *testing.T) {
	roles := []lifecycle.Role{
		lifecycle.RoleAdmin, lifecycle.RoleLogist, lifecycle.RoleMontajnik, lifecycle.RoleTechSupp,
	}
	for _, role := range roles {
		ep, err := EndpointsFor(role)
		if err != nil {
			t.Fatalf("role %s has no endpoint set: %v", role, err)
		}
		if ep.List == "" || ep.Filter == "" || ep.Get == "" {
			t.Fatalf("role %s has an incomplete endpoint set: %+v", role, ep)
		}
	}
	if _, err := EndpointsFor(lifecycle.RoleUnknown); err == nil {
		t.Fatal("unknown role must not resolve to endpoints")
	}
}

func TestFilterTasks_UsesRoleEndpointAndQuery(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"items":[{"id":1,"status":"new"}],"total":1}`))
	}))
	defer srv.Close()

	list, err := New(srv.URL).WithToken("t").FilterTasks(context.Background(), lifecycle.RoleAdmin, TaskFilter{
		Status:    []string{"new", "accepted"},
		CompanyID: 3,
	})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if gotPath != "/admin/tasks/filter" {
		t.Fatalf("path: %s", gotPath)
	}
	if gotQuery != "company_id=3&status=new%2Caccepted" {
		t.Fatalf("query: %s", gotQuery)
	}
	if list.Total != 1 || len(list.Items) != 1 || list.Items[0].ID != 1 {
		t.Fatalf("list: %+v", list)
	}
}
