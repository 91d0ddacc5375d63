package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"montajbot/internal/constants"
	"montajbot/internal/lifecycle"
	"montajbot/internal/models"
)

// fakeBackend — минимальный бэкенд в памяти для сквозного сценария:
// одно задание с индивидуальным назначением проходит путь от принятия
// до согласованного отчета.
type fakeBackend struct {
	task    models.Task
	nextRep int64
}

func (f *fakeBackend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON := func(v interface{}) {
			if err := json.NewEncoder(w).Encode(v); err != nil {
				t.Errorf("encode: %v", err)
			}
		}
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/montajnik/tasks/42/accept":
			f.task.Status = constants.STATUS_ACCEPTED
			writeJSON(f.task)
		case r.Method == http.MethodPost && r.URL.Path == "/montajnik/tasks/42/status":
			var body struct {
				Status string `json:"status"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			f.task.Status = body.Status
			writeJSON(f.task)
		case r.Method == http.MethodPost && r.URL.Path == "/montajnik/tasks/42/report":
			var p models.ReportPayload
			json.NewDecoder(r.Body).Decode(&p)
			f.nextRep++
			rep := models.Report{
				ID:             f.nextRep,
				TaskID:         f.task.ID,
				Text:           p.Text,
				ApprovalLogist: constants.APPROVAL_WAITING,
				ApprovalTech:   constants.APPROVAL_WAITING,
			}
			f.task.Reports = append(f.task.Reports, rep)
			f.task.Status = constants.STATUS_INSPECTION
			writeJSON(rep)
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/logist/tasks/42/reports/"):
			var p models.ReviewPayload
			json.NewDecoder(r.Body).Decode(&p)
			// Решение меняет только поля согласования отчета.
			f.task.Reports[len(f.task.Reports)-1].ApprovalLogist = p.Approval
			f.task.Reports[len(f.task.Reports)-1].CommentLogist = p.Comment
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/montajnik/tasks/42":
			writeJSON(f.task)
		case r.Method == http.MethodGet && r.URL.Path == "/logist/tasks/42":
			writeJSON(f.task)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestScenario_IndividualTaskThroughReportApproval(t *testing.T) {
	fb := &fakeBackend{task: models.Task{
		ID:             42,
		Status:         constants.STATUS_NEW,
		AssignmentType: constants.ASSIGNMENT_INDIVIDUAL,
		AssignedUserID: 7,
	}}
	srv := httptest.NewServer(fb.handler(t))
	defer srv.Close()

	ctx := context.Background()
	montajnik := New(srv.URL).WithToken("montajnik-7")
	logist := New(srv.URL).WithToken("logist-1")

	// Монтажник принимает задание.
	task, err := montajnik.AcceptTask(ctx, 42)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if task.Status != constants.STATUS_ACCEPTED {
		t.Fatalf("after accept: %s", task.Status)
	}

	// Выезд.
	task, err = montajnik.SetTaskStatus(ctx, 42, constants.STATUS_ON_THE_ROAD)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if task.Status != constants.STATUS_ON_THE_ROAD {
		t.Fatalf("after status change: %s", task.Status)
	}

	// Отчет.
	rep, err := montajnik.SubmitReport(ctx, 42, models.ReportPayload{Text: "Выполнено: Монтаж"})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rep.ApprovalLogist != constants.APPROVAL_WAITING {
		t.Fatalf("fresh report approval: %s", rep.ApprovalLogist)
	}

	// Пока отчет на согласовании, новый сдавать нельзя.
	task, err = montajnik.GetTask(ctx, lifecycle.RoleMontajnik, 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !lifecycle.HasPendingReport(task.Reports) {
		t.Fatal("pending report must block a new submission")
	}

	// Логист согласует.
	if err := logist.ReviewReport(ctx, 42, rep.ID, models.ReviewPayload{Approval: constants.APPROVAL_APPROVED}); err != nil {
		t.Fatalf("review: %v", err)
	}

	task, err = logist.GetTask(ctx, lifecycle.RoleLogist, 42)
	if err != nil {
		t.Fatalf("get after review: %v", err)
	}
	last := task.Reports[len(task.Reports)-1]
	if last.ApprovalLogist != constants.APPROVAL_APPROVED {
		t.Fatalf("logist approval: %s", last.ApprovalLogist)
	}
	// Решение по отчету не трогает статус самого задания.
	if task.Status != constants.STATUS_INSPECTION {
		t.Fatalf("task status must stay inspection, got %s", task.Status)
	}
	// Техпроверка не требуется — отчет считается согласованным, задание можно завершать.
	if !lifecycle.ReportSettled(last, false) {
		t.Fatal("report must be settled without tech review")
	}
	if !lifecycle.CanComplete(task, false) {
		t.Fatal("logist must be able to complete the task")
	}
}

func TestReviewRejection_KeepsTaskStatus(t *testing.T) {
	fb := &fakeBackend{task: models.Task{
		ID:     42,
		Status: constants.STATUS_INSPECTION,
		Reports: []models.Report{{
			ID: 1, TaskID: 42, Text: "Выполнено",
			ApprovalLogist: constants.APPROVAL_WAITING,
			ApprovalTech:   constants.APPROVAL_WAITING,
		}},
	}}
	fb.nextRep = 1
	srv := httptest.NewServer(fb.handler(t))
	defer srv.Close()

	ctx := context.Background()
	logist := New(srv.URL).WithToken("logist-1")
	if err := logist.ReviewReport(ctx, 42, 1, models.ReviewPayload{
		Approval: constants.APPROVAL_REJECTED,
		Comment:  "Нет фото установленного оборудования",
	}); err != nil {
		t.Fatalf("review: %v", err)
	}

	task, err := logist.GetTask(ctx, lifecycle.RoleLogist, 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if task.Status != constants.STATUS_INSPECTION {
		t.Fatalf("rejection must not change the task status, got %s", task.Status)
	}
	last := task.Reports[0]
	if last.ApprovalLogist != constants.APPROVAL_REJECTED || last.CommentLogist == "" {
		t.Fatalf("rejection must set approval and comment: %+v", last)
	}
	if !lifecycle.ReportRejected(last) {
		t.Fatal("report must count as rejected")
	}
}
