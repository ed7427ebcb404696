package handler

import (
	"time"

	"github.com/avendel/textamend/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash is
// never serialized.
type UserDTO struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// ResultDTO is the JSON representation of one result slot.
type ResultDTO struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Tone      string `json:"tone"`
}

func toResultDTO(r *domain.Result) *ResultDTO {
	if r == nil {
		return nil
	}
	return &ResultDTO{
		Original:  r.Original,
		Corrected: r.Corrected,
		Tone:      r.Tone,
	}
}

// LogEntryDTO is the JSON representation of one activity log entry.
type LogEntryDTO struct {
	ID        int64  `json:"id"`
	Operation string `json:"operation"`
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Language  string `json:"language,omitempty"`
	Tone      string `json:"tone,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func toLogEntryDTOs(entries []domain.LogEntry) []LogEntryDTO {
	dtos := make([]LogEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = LogEntryDTO{
			ID:        e.ID,
			Operation: string(e.Operation),
			Original:  e.Original,
			Corrected: e.Corrected,
			Language:  e.Language,
			Tone:      e.Tone,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
	}
	return dtos
}
