package lifecycle

import (
	"testing"

	"montajbot/internal/constants"
	"montajbot/internal/models"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "logist", "montajnik", "tech_supp"} {
		r, err := ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", s, err)
		}
		if r.String() != s {
			t.Fatalf("round trip %q -> %q", s, r.String())
		}
	}
	if _, err := ParseRole("driver"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestCanTransition_MontajnikChain(t *testing.T) {
	chain := []string{
		constants.STATUS_ACCEPTED,
		constants.STATUS_ON_THE_ROAD,
		constants.STATUS_ON_SITE,
		constants.STATUS_STARTED,
		constants.STATUS_INSPECTION,
	}
	from := constants.STATUS_NEW
	for _, to := range chain {
		if !CanTransition(RoleMontajnik, from, to) {
			t.Fatalf("montajnik should move %s -> %s", from, to)
		}
		from = to
	}
	// Перескок через статус запрещен.
	if CanTransition(RoleMontajnik, constants.STATUS_ACCEPTED, constants.STATUS_STARTED) {
		t.Fatal("montajnik must not skip on_the_road/on_site")
	}
	// Чужая роль не двигает задание по цепочке монтажника.
	if CanTransition(RoleLogist, constants.STATUS_ACCEPTED, constants.STATUS_ON_THE_ROAD) {
		t.Fatal("logist must not drive the montajnik chain")
	}
}

func TestCanTransition_ArchiveAndBack(t *testing.T) {
	for _, from := range []string{
		constants.STATUS_NEW, constants.STATUS_ASSIGNED, constants.STATUS_COMPLETED,
		constants.STATUS_INSPECTION, constants.STATUS_RETURNED,
	} {
		if !CanTransition(RoleLogist, from, constants.STATUS_ARCHIVED) {
			t.Fatalf("logist should archive from %s", from)
		}
	}
	if !CanTransition(RoleLogist, constants.STATUS_ARCHIVED, constants.STATUS_DRAFT) {
		t.Fatal("unarchive must go back to draft")
	}
	if CanTransition(RoleMontajnik, constants.STATUS_NEW, constants.STATUS_ARCHIVED) {
		t.Fatal("montajnik must not archive")
	}
	if CanTransition(RoleLogist, constants.STATUS_ON_THE_ROAD, constants.STATUS_ARCHIVED) {
		t.Fatal("active in-progress task must not be archived")
	}
}

func TestCanTransition_RejectReturnsToPool(t *testing.T) {
	if !CanTransition(RoleMontajnik, constants.STATUS_ASSIGNED, constants.STATUS_NEW) {
		t.Fatal("rejecting an individual assignment must release it to the pool")
	}
	if CanTransition(RoleMontajnik, constants.STATUS_NEW, constants.STATUS_DRAFT) {
		t.Fatal("montajnik must not unpublish tasks")
	}
}

func TestNextStatuses_StableOrder(t *testing.T) {
	got := NextStatuses(RoleLogist, constants.STATUS_INSPECTION)
	want := []string{constants.STATUS_COMPLETED, constants.STATUS_RETURNED, constants.STATUS_ARCHIVED}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestHasPendingReport(t *testing.T) {
	reports := []models.Report{
		{ApprovalLogist: constants.APPROVAL_APPROVED, ApprovalTech: constants.APPROVAL_APPROVED},
		{ApprovalLogist: constants.APPROVAL_WAITING, ApprovalTech: constants.APPROVAL_APPROVED},
	}
	if !HasPendingReport(reports) {
		t.Fatal("waiting logist approval must block a new report")
	}
	reports[1].ApprovalLogist = constants.APPROVAL_REJECTED
	reports[1].ApprovalTech = constants.APPROVAL_WAITING
	if !HasPendingReport(reports) {
		t.Fatal("waiting tech approval must block a new report")
	}
	reports[1].ApprovalTech = constants.APPROVAL_REJECTED
	if HasPendingReport(reports) {
		t.Fatal("fully decided reports must not block a new one")
	}
}

func TestNeedsTechReview(t *testing.T) {
	catalog := []models.WorkType{
		{ID: 1, Name: "Монтаж"},
		{ID: 2, Name: "Калибровка", RequiresTechReview: true},
	}
	plain := []models.TaskWorkType{{WorkTypeID: 1, Quantity: 2}}
	if NeedsTechReview(plain, catalog) {
		t.Fatal("plain work types must not require tech review")
	}
	mixed := []models.TaskWorkType{{WorkTypeID: 1}, {WorkTypeID: 2}}
	if !NeedsTechReview(mixed, catalog) {
		t.Fatal("a single flagged work type must require tech review")
	}
}

func TestReportSettled(t *testing.T) {
	r := models.Report{ApprovalLogist: constants.APPROVAL_APPROVED, ApprovalTech: constants.APPROVAL_WAITING}
	if !ReportSettled(r, false) {
		t.Fatal("without tech requirement the logist approval alone settles the report")
	}
	if ReportSettled(r, true) {
		t.Fatal("with tech requirement a waiting tech approval must not settle")
	}
	r.ApprovalTech = constants.APPROVAL_APPROVED
	if !ReportSettled(r, true) {
		t.Fatal("both approvals must settle the report")
	}
}

func TestCanComplete(t *testing.T) {
	task := models.Task{
		Status: constants.STATUS_INSPECTION,
		Reports: []models.Report{{
			ApprovalLogist: constants.APPROVAL_APPROVED,
			ApprovalTech:   constants.APPROVAL_WAITING,
		}},
	}
	if !CanComplete(task, false) {
		t.Fatal("logist-approved report without tech requirement should allow completion")
	}
	if CanComplete(task, true) {
		t.Fatal("pending tech approval must block completion")
	}
	task.Status = constants.STATUS_STARTED
	if CanComplete(task, false) {
		t.Fatal("completion is only possible from inspection")
	}
}
