package formatters

import (
	"strings"
	"testing"
	"time"

	"montajbot/internal/constants"
	"montajbot/internal/models"
)

func testRefs() Refs {
	return Refs{
		Companies: map[int64]string{10: "ООО Ромашка"},
		Contacts:  map[int64]string{5: "Иван Петров"},
		Equipment: map[int64]string{1: "Датчик уровня топлива"},
		WorkTypes: map[int64]string{2: "Калибровка"},
		Users:     map[int64]string{7: "Сергей Смирнов"},
	}
}

func TestFormatTaskCard(t *testing.T) {
	task := models.Task{
		ID:              42,
		Status:          constants.STATUS_ASSIGNED,
		CompanyID:       10,
		ContactPersonID: 5,
		VehicleInfo:     "КамАЗ 5490",
		GosNumber:       "А123ВС77",
		Location:        "Москва, Ленинградское ш. 39",
		ClientPrice:     12500,
		MontajnikReward: 5000,
		AssignmentType:  constants.ASSIGNMENT_INDIVIDUAL,
		AssignedUserID:  7,
		PhotoRequired:   true,
		Equipment:       []models.TaskEquipment{{EquipmentID: 1, Quantity: 2}},
		WorkTypes:       []models.TaskWorkType{{WorkTypeID: 2, Quantity: 1}},
	}
	card := FormatTaskCard(task, testRefs())

	for _, want := range []string{
		"Задание #42",
		"ООО Ромашка",
		"Иван Петров",
		"КамАЗ 5490 (А123ВС77)",
		"Датчик уровня топлива ×2",
		"Калибровка ×1",
		"Сергей Смирнов",
		"Фотоотчет обязателен",
	} {
		if !strings.Contains(card, want) {
			t.Errorf("в карточке нет %q:\n%s", want, card)
		}
	}
}

func TestFormatTaskCardUnknownIDs(t *testing.T) {
	task := models.Task{
		ID:        1,
		Status:    constants.STATUS_NEW,
		Equipment: []models.TaskEquipment{{EquipmentID: 99, Quantity: 1}},
	}
	card := FormatTaskCard(task, Refs{})
	if !strings.Contains(card, "#99 ×1") {
		t.Errorf("позиция без справочника должна печататься по id:\n%s", card)
	}
}

func TestFormatDraftCard(t *testing.T) {
	draft := models.Draft{ID: 3, TaskPayload: models.TaskPayload{CompanyID: 10}}
	card := FormatDraftCard(draft, testRefs())
	if !strings.Contains(card, "Черновик #3") {
		t.Errorf("заголовок черновика не напечатан:\n%s", card)
	}
	if strings.Contains(card, "Задание #3") {
		t.Errorf("заголовок задания не должен остаться в черновике:\n%s", card)
	}
}

func TestFormatReportCard(t *testing.T) {
	r := models.Report{
		ID:             8,
		TaskID:         42,
		Text:           "Установлено и проверено",
		Photos:         []models.Attachment{{ID: 1}, {ID: 2}},
		ApprovalLogist: constants.APPROVAL_APPROVED,
		ApprovalTech:   constants.APPROVAL_WAITING,
	}

	withTech := FormatReportCard(r, true)
	if !strings.Contains(withTech, "Логист: ✅") || !strings.Contains(withTech, "Техподдержка: ⏳") {
		t.Errorf("неожиданные строки согласований:\n%s", withTech)
	}

	withoutTech := FormatReportCard(r, false)
	if !strings.Contains(withoutTech, "Техподдержка: не требуется") {
		t.Errorf("для задания без техпроверки должна быть пометка:\n%s", withoutTech)
	}
}

func TestFormatHistory(t *testing.T) {
	entries := []models.HistoryEntry{
		{
			Kind:      models.HistoryKindFieldChanges,
			AuthorID:  7,
			Changes:   []models.FieldChange{{Field: "status", Old: "new", New: "assigned"}},
			CreatedAt: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		},
		{Kind: models.HistoryKindFreeText, Text: "Задание возвращено"},
	}
	out := FormatHistory(42, entries, testRefs())

	for _, want := range []string{
		"История задания #42",
		"01.03.2026 12:30",
		"Сергей Смирнов",
		"status: new → assigned",
		"Задание возвращено",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("в истории нет %q:\n%s", want, out)
		}
	}
}

func TestFormatHistoryEmpty(t *testing.T) {
	out := FormatHistory(1, nil, Refs{})
	if !strings.Contains(out, "Записей пока нет.") {
		t.Errorf("пустая история должна содержать заглушку:\n%s", out)
	}
}
