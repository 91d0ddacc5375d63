package backend

import (
	"context"
	"fmt"

	"montajbot/internal/models"
)

// Справочники общие для всех авторизованных ролей.

// Companies возвращает компании-заказчики.
func (c *Client) Companies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := c.get(ctx, "/catalog/companies", nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// ContactPersons возвращает контактных лиц компании (без телефонов).
func (c *Client) ContactPersons(ctx context.Context, companyID int64) ([]models.ContactPerson, error) {
	var contacts []models.ContactPerson
	if err := c.get(ctx, fmt.Sprintf("/catalog/companies/%d/contacts", companyID), nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// ContactPhone лениво запрашивает телефон контактного лица.
func (c *Client) ContactPhone(ctx context.Context, contactID int64) (string, error) {
	var out struct {
		Phone string `json:"phone"`
	}
	if err := c.get(ctx, fmt.Sprintf("/catalog/contacts/%d/phone", contactID), nil, &out); err != nil {
		return "", err
	}
	return out.Phone, nil
}

// EquipmentCatalog возвращает каталог оборудования.
func (c *Client) EquipmentCatalog(ctx context.Context) ([]models.Equipment, error) {
	var items []models.Equipment
	if err := c.get(ctx, "/catalog/equipment", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// WorkTypes возвращает виды работ вместе с флагом техпроверки.
func (c *Client) WorkTypes(ctx context.Context) ([]models.WorkType, error) {
	var items []models.WorkType
	if err := c.get(ctx, "/catalog/work-types", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
