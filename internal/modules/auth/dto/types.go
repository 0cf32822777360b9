package dto

import "time"

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Email    string
	Password string
}

type SessionOutput struct {
	Authenticated bool
	UserID        string
	Email         string
	Name          string
	CreatedAt     time.Time
	Loading       bool
	Error         string
}
