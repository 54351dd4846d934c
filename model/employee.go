package model

import "time"

const (
	EmployeeStatusActive = "active"
	EmployeeStatusLeft   = "left"
)

type Employee struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Position string    `json:"position"`
	Status   string    `json:"status"`
	Username string    `json:"username"` // login name of the linked account, empty when none
	HiredAt  time.Time `json:"hired_at"`
}
