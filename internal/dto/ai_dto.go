package dto

import (
	"time"

	"github.com/daybook-app/daybook-server/internal/models"
)

type AIQueryRequest struct {
	Question  string `json:"question"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type RelevantEntry struct {
	ID      string      `json:"id"`
	Date    string      `json:"date"`
	Content string      `json:"content"`
	Mood    models.Mood `json:"mood"`
}

type AIQueryResponse struct {
	Answer          string          `json:"answer"`
	RelevantEntries []RelevantEntry `json:"relevant_entries"`
}

type EnhanceRequest struct {
	Content   string `json:"content"`
	EntryDate string `json:"entry_date"`
}

type EnhanceResponse struct {
	Enhanced string `json:"enhanced"`
}

type AIUsageResponse struct {
	Remaining int       `json:"remaining"`
	Limit     int       `json:"limit"`
	ResetTime time.Time `json:"reset_time"`
}

type AIHealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
