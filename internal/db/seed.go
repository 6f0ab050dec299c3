package db

import (
	"context"
	"database/sql"
	"fmt"
)

type seedEmployee struct {
	badge      string
	fullName   string
	position   string
	department string
	phone      string
}

type seedTurnstile struct {
	id       int64
	name     string
	location string
}

var seedEmployees = []seedEmployee{
	{"RFID-1001", "Ivan Ivanov", "Director", "Administration", "+79161000101"},
	{"RFID-1002", "Anna Petrova", "Accountant", "Finance", "+79161000202"},
	{"RFID-1003", "Alexey Sidorov", "Engineer", "IT", "+79161000303"},
	{"RFID-1004", "Elena Smirnova", "Manager", "Sales", "+79161000404"},
	{"RFID-1005", "Dmitry Kuznetsov", "Security Guard", "Security", "+79161000505"},
	{"RFID-1006", "Olga Vasilyeva", "Analyst", "Marketing", "+79161000606"},
	{"RFID-1007", "Artem Nikolaev", "Developer", "IT", "+79161000707"},
	{"RFID-1008", "Victoria Pavlova", "Designer", "Marketing", "+79161000808"},
	{"RFID-1009", "Mikhail Fedorov", "Logistician", "Warehouse", "+79161000909"},
	{"RFID-1010", "Anastasia Grigorieva", "HR Specialist", "People", "+79161001010"},
}

var seedTurnstiles = []seedTurnstile{
	{1, "Main Entrance", "Central Hall"},
	{2, "Warehouse Entrance", "Building B, Floor 1"},
	{3, "Parking", "Underground Level"},
}

// SeedReferenceData loads the employee and turnstile catalog. Existing rows
// are left untouched, so re-running the seed is harmless.
func SeedReferenceData(ctx context.Context, conn *sql.DB) error {
	for _, e := range seedEmployees {
		if _, err := conn.ExecContext(ctx, `
INSERT OR IGNORE INTO employees(badge_code, full_name, position, department, phone)
VALUES (?, ?, ?, ?, ?);`,
			e.badge, e.fullName, e.position, e.department, e.phone,
		); err != nil {
			return fmt.Errorf("seed employee %s: %w", e.badge, err)
		}
	}

	for _, t := range seedTurnstiles {
		if _, err := conn.ExecContext(ctx, `
INSERT OR IGNORE INTO turnstiles(id, name, location)
VALUES (?, ?, ?);`,
			t.id, t.name, t.location,
		); err != nil {
			return fmt.Errorf("seed turnstile %d: %w", t.id, err)
		}
	}

	return nil
}
