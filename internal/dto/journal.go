package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// CreateJournalLineRequest defines one line of a new journal entry.
// Exactly one of Debit and Credit must be positive.
type CreateJournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time                  `json:"entryDate" binding:"required" time_format:"2006-01-02"`
	Description string                     `json:"description" binding:"required"`
	Reference   string                     `json:"reference"`
	EntryType   domain.EntryType           `json:"entryType" binding:"omitempty,oneof=STANDARD ADJUSTING CLOSING REVERSING"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest defines the data allowed for updating an entry.
// Lines, when present, replace the entry's lines wholesale.
type UpdateJournalEntryRequest struct {
	EntryDate   *time.Time                 `json:"entryDate" time_format:"2006-01-02"`
	Description *string                    `json:"description"`
	Reference   *string                    `json:"reference"`
	EntryType   *domain.EntryType          `json:"entryType" binding:"omitempty,oneof=STANDARD ADJUSTING CLOSING REVERSING"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"omitempty,min=2,dive"`
}

// ReverseJournalEntryRequest carries the optional overrides when
// reversing an entry. Absent fields fall back to today's date and a
// generated "Reversal of" description.
type ReverseJournalEntryRequest struct {
	EntryDate   *time.Time `json:"entryDate" time_format:"2006-01-02"`
	Description *string    `json:"description"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	From      string `form:"from"`      // YYYY-MM-DD
	To        string `form:"to"`        // YYYY-MM-DD
	EntryType string `form:"entryType"` // STANDARD/ADJUSTING/CLOSING/REVERSING
	Locked    string `form:"locked"`    // "true"/"false"
	AccountID string `form:"accountID"`
	Reference string `form:"reference"`
	Search    string `form:"search"`
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal line,
// including a snapshot of the account it posts to.
type JournalLineResponse struct {
	LineID      string             `json:"lineID"`
	AccountID   string             `json:"accountID"`
	AccountCode string             `json:"accountCode"`
	AccountName string             `json:"accountName"`
	AccountType domain.AccountType `json:"accountType"`
	Debit       decimal.Decimal    `json:"debit"`
	Credit      decimal.Decimal    `json:"credit"`
	Memo        string             `json:"memo,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID      string                `json:"entryID"`
	EntryDate    time.Time             `json:"entryDate"`
	Description  string                `json:"description"`
	Reference    string                `json:"reference,omitempty"`
	EntryType    domain.EntryType      `json:"entryType"`
	IsLocked     bool                  `json:"isLocked"`
	Lines        []JournalLineResponse `json:"lines,omitempty"`
	TotalDebits  decimal.Decimal       `json:"totalDebits"`
	TotalCredits decimal.Decimal       `json:"totalCredits"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
}

// ListJournalEntriesResponse wraps a page of entries with the token for
// the following page.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to JournalLineResponse DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		AccountCode: l.AccountCode,
		AccountName: l.AccountName,
		AccountType: l.AccountType,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Memo:        l.Memo,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = ToJournalLineResponse(&l)
	}
	return JournalEntryResponse{
		EntryID:      e.EntryID,
		EntryDate:    e.EntryDate,
		Description:  e.Description,
		Reference:    e.Reference,
		EntryType:    e.EntryType,
		IsLocked:     e.IsLocked,
		Lines:        lines,
		TotalDebits:  e.TotalDebits(),
		TotalCredits: e.TotalCredits(),
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// ToListJournalEntriesResponse converts a page of domain entries to the list DTO.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListJournalEntriesResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToJournalEntryResponse(&e)
	}
	return ListJournalEntriesResponse{Entries: res, NextToken: nextToken}
}
