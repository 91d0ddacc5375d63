package formatters

import (
	"fmt"
	"strings"

	"montajbot/internal/constants"
	"montajbot/internal/models"
	"montajbot/internal/utils"
)

const separator = "─ ─ ─ ─ ─ ─ ─ ─ ─ ─ ─ ─ ─"

// Refs — справочные подстановки id → название, собираются обработчиком
// из загруженных справочников. Отсутствующий id просто не печатается.
type Refs struct {
	Companies map[int64]string
	Contacts  map[int64]string
	Equipment map[int64]string
	WorkTypes map[int64]string
	Users     map[int64]string
}

func (r Refs) lookup(m map[int64]string, id int64) string {
	if m == nil {
		return ""
	}
	return m[id]
}

// StatusLine печатает статус со значком.
func StatusLine(status string) string {
	return fmt.Sprintf("%s %s", constants.StatusEmojiMap[status], constants.StatusDisplayMap[status])
}

// FormatTaskListItem — одна строка списка заданий.
func FormatTaskListItem(t models.Task, refs Refs) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>#%d</b>", constants.StatusEmojiMap[t.Status], t.ID)
	if company := refs.lookup(refs.Companies, t.CompanyID); company != "" {
		fmt.Fprintf(&b, " · %s", utils.EscapeHTML(company))
	}
	if t.ScheduledAt != "" {
		fmt.Fprintf(&b, " · %s", utils.FormatDateTime(t.ScheduledAt))
	}
	return b.String()
}

// FormatTaskCard — карточка задания для чата.
func FormatTaskCard(t models.Task, refs Refs) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>Задание #%d</b>\n", t.ID)
	fmt.Fprintf(&b, "Статус: %s\n", StatusLine(t.Status))
	b.WriteString(separator + "\n")

	if company := refs.lookup(refs.Companies, t.CompanyID); company != "" {
		fmt.Fprintf(&b, "🏢 Компания: %s\n", utils.EscapeHTML(company))
	}
	if contact := refs.lookup(refs.Contacts, t.ContactPersonID); contact != "" {
		fmt.Fprintf(&b, "👤 Контакт: %s\n", utils.EscapeHTML(contact))
	}
	if t.VehicleInfo != "" {
		fmt.Fprintf(&b, "🚚 ТС: %s", utils.EscapeHTML(t.VehicleInfo))
		if t.GosNumber != "" {
			fmt.Fprintf(&b, " (%s)", utils.EscapeHTML(t.GosNumber))
		}
		b.WriteString("\n")
	}
	if t.ScheduledAt != "" {
		fmt.Fprintf(&b, "🗓 Когда: %s\n", utils.FormatDateTime(t.ScheduledAt))
	}
	if t.Location != "" {
		fmt.Fprintf(&b, "📍 Где: %s\n", utils.EscapeHTML(t.Location))
	}
	if t.Comment != "" {
		fmt.Fprintf(&b, "💬 Комментарий: %s\n", utils.EscapeHTML(t.Comment))
	}

	if len(t.Equipment) > 0 {
		b.WriteString(separator + "\n🔩 <b>Оборудование:</b>\n")
		for _, eq := range t.Equipment {
			name := refs.lookup(refs.Equipment, eq.EquipmentID)
			if name == "" {
				name = fmt.Sprintf("#%d", eq.EquipmentID)
			}
			fmt.Fprintf(&b, " • %s ×%d", utils.EscapeHTML(name), eq.Quantity)
			if eq.SerialNumber != "" {
				fmt.Fprintf(&b, " (s/n %s)", utils.EscapeHTML(eq.SerialNumber))
			}
			b.WriteString("\n")
		}
	}
	if len(t.WorkTypes) > 0 {
		b.WriteString("🔧 <b>Работы:</b>\n")
		for _, wt := range t.WorkTypes {
			name := refs.lookup(refs.WorkTypes, wt.WorkTypeID)
			if name == "" {
				name = fmt.Sprintf("#%d", wt.WorkTypeID)
			}
			fmt.Fprintf(&b, " • %s ×%d\n", utils.EscapeHTML(name), wt.Quantity)
		}
	}

	var money []string
	if t.ClientPrice > 0 {
		money = append(money, "клиенту "+utils.FormatMoney(t.ClientPrice))
	}
	if t.MontajnikReward > 0 {
		money = append(money, "монтажнику "+utils.FormatMoney(t.MontajnikReward))
	}
	if len(money) > 0 {
		fmt.Fprintf(&b, "💰 %s\n", strings.Join(money, ", "))
	}

	if t.AssignmentType == constants.ASSIGNMENT_INDIVIDUAL {
		line := "📌 Индивидуальное назначение"
		if who := refs.lookup(refs.Users, t.AssignedUserID); who != "" {
			line += ": " + utils.EscapeHTML(who)
		}
		b.WriteString(line + "\n")
	}
	if t.PhotoRequired {
		b.WriteString("📷 Фотоотчет обязателен\n")
	}
	if n := len(t.Attachments); n > 0 {
		fmt.Fprintf(&b, "📎 Вложения: %d\n", n)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDraftCard — карточка черновика.
func FormatDraftCard(d models.Draft, refs Refs) string {
	t := models.Task{
		ID:              d.ID,
		Status:          constants.STATUS_DRAFT,
		CompanyID:       d.CompanyID,
		ContactPersonID: d.ContactPersonID,
		VehicleInfo:     d.VehicleInfo,
		GosNumber:       d.GosNumber,
		ScheduledAt:     d.ScheduledAt,
		Location:        d.Location,
		Comment:         d.Comment,
		ClientPrice:     d.ClientPrice,
		MontajnikReward: d.MontajnikReward,
		AssignmentType:  d.AssignmentType,
		AssignedUserID:  d.AssignedUserID,
		PhotoRequired:   d.PhotoRequired,
		Equipment:       d.Equipment,
		WorkTypes:       d.WorkTypes,
	}
	return strings.Replace(FormatTaskCard(t, refs), "📋 <b>Задание", "📝 <b>Черновик", 1)
}

// FormatReportCard — карточка отчета с состоянием обоих согласований.
func FormatReportCard(r models.Report, techRequired bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📄 <b>Отчет #%d</b> по заданию #%d\n", r.ID, r.TaskID)
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "%s\n", utils.EscapeHTML(r.Text))
	if n := len(r.Photos); n > 0 {
		fmt.Fprintf(&b, "📷 Фото: %d\n", n)
	}
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Логист: %s\n", constants.ApprovalDisplayMap[r.ApprovalLogist])
	if r.CommentLogist != "" {
		fmt.Fprintf(&b, " └ %s\n", utils.EscapeHTML(r.CommentLogist))
	}
	if techRequired {
		fmt.Fprintf(&b, "Техподдержка: %s\n", constants.ApprovalDisplayMap[r.ApprovalTech])
		if r.CommentTech != "" {
			fmt.Fprintf(&b, " └ %s\n", utils.EscapeHTML(r.CommentTech))
		}
	} else {
		b.WriteString("Техподдержка: не требуется\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatHistory — история задания. Записи об изменениях полей печатаются
// списком «поле: было → стало».
func FormatHistory(taskID int64, entries []models.HistoryEntry, refs Refs) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🕓 <b>История задания #%d</b>\n%s\n", taskID, separator)
	if len(entries) == 0 {
		b.WriteString("Записей пока нет.")
		return b.String()
	}
	for _, e := range entries {
		when := ""
		if !e.CreatedAt.IsZero() {
			when = e.CreatedAt.Format("02.01.2006 15:04") + " "
		}
		author := refs.lookup(refs.Users, e.AuthorID)
		if author != "" {
			author = " — " + utils.EscapeHTML(author)
		}
		switch e.Kind {
		case models.HistoryKindFieldChanges:
			fmt.Fprintf(&b, "%sИзменения%s:\n", when, author)
			for _, ch := range e.Changes {
				fmt.Fprintf(&b, " • %s: %s → %s\n",
					utils.EscapeHTML(ch.Field), utils.EscapeHTML(ch.Old), utils.EscapeHTML(ch.New))
			}
		default:
			fmt.Fprintf(&b, "%s%s%s\n", when, utils.EscapeHTML(e.Text), author)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatProfile — экран профиля.
func FormatProfile(fullName, role string, counts string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👤 <b>%s</b>\n", utils.EscapeHTML(fullName))
	fmt.Fprintf(&b, "Роль: %s\n", constants.RoleDisplayMap[role])
	if counts != "" {
		b.WriteString(separator + "\n" + counts)
	}
	return b.String()
}
