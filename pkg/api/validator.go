package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

const maxNameLen = 24

func (p JoinPayload) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if len(p.Name) > maxNameLen {
		return errors.New("name too long")
	}
	if p.Room != "" && len(p.Room) != 4 {
		return errors.New("room code must be 4 characters")
	}
	return nil
}

func (p StartGamePayload) Validate() error {
	if p.NoRushSeconds < 0 {
		return errors.New("noRushSeconds cannot be negative")
	}
	return nil
}
