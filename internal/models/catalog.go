package models

// Справочники. Все они принадлежат бэкенду; бот только показывает их
// и подставляет id в создаваемые задания.

// Company — компания-заказчик.
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ContactPerson — контактное лицо компании. Телефон намеренно не входит
// в списочную выдачу: бэкенд отдает его отдельным запросом по id.
type ContactPerson struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"company_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
}

// Equipment — позиция каталога оборудования.
type Equipment struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price,omitempty"`
}

// WorkType — вид работ. RequiresTechReview означает, что отчет по заданию
// с таким видом работ дополнительно согласует техподдержка.
type WorkType struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Price              float64 `json:"price,omitempty"`
	RequiresTechReview bool    `json:"requires_tech_review,omitempty"`
}

// CatalogPayload — тело создания/редактирования позиции справочника
// (оборудование и виды работ имеют одинаковую форму на записи).
type CatalogPayload struct {
	Name               string  `json:"name,omitempty"`
	Category           string  `json:"category,omitempty"`
	Price              float64 `json:"price,omitempty"`
	RequiresTechReview *bool   `json:"requires_tech_review,omitempty"`
}
