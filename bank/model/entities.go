package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

const DefaultCurrency = "INR"

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID  `bun:"user_id,pk,type:uuid" json:"id"`
	Name         string     `bun:"name,notnull" json:"name"`
	Email        string     `bun:"email,unique,notnull" json:"email"`
	PhoneNumber  *string    `bun:"phone_number,unique" json:"phone_number"`
	PasswordHash string     `bun:"password,notnull" json:"-"`
	IsActive     bool       `bun:"is_active,notnull,default:false" json:"is_active"`
	LastLogin    *time.Time `bun:"last_login" json:"last_login"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID            uuid.UUID `bun:"account_id,pk,type:uuid" json:"account_id"`
	UserID        uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	AccountNumber string    `bun:"account_number,unique,notnull" json:"account_number"`
	AccountType   string    `bun:"account_type,notnull" json:"account_type"`
	Balance       Money     `bun:"balance,notnull,type:numeric(15,2),default:0" json:"balance"`
	Currency      string    `bun:"currency,notnull,default:'INR'" json:"currency"`
	IsActive      bool      `bun:"is_active,notnull,default:true" json:"is_active"`
}

type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID              uuid.UUID         `bun:"transaction_id,pk,type:uuid" json:"transaction_id"`
	FromAccountID   uuid.UUID         `bun:"from_account_id,notnull,type:uuid" json:"from_account_id"`
	ToAccountNumber string            `bun:"to_account_number,notnull" json:"to_account_number"`
	Amount          Money             `bun:"amount,notnull,type:numeric(15,2)" json:"amount"`
	Status          TransactionStatus `bun:"status,notnull" json:"status"`
	ReferenceID     *string           `bun:"reference_id,unique" json:"reference_id"`
	Metadata        map[string]any    `bun:"message_metadata,type:jsonb" json:"message_metadata"`
	CreatedAt       time.Time         `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type ChatSession struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID        uuid.UUID  `bun:"session_id,pk,type:uuid" json:"session_id"`
	UserID    uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id"`
	StartedAt time.Time  `bun:"started_at,notnull,default:current_timestamp" json:"started_at"`
	EndedAt   *time.Time `bun:"ended_at" json:"ended_at"`
	IsActive  bool       `bun:"is_active,notnull,default:true" json:"is_active"`
}

type Message struct {
	bun.BaseModel `bun:"table:messages,alias:m"`

	ID        uuid.UUID      `bun:"message_id,pk,type:uuid" json:"message_id"`
	SessionID uuid.UUID      `bun:"session_id,notnull,type:uuid" json:"session_id"`
	Sender    Sender         `bun:"sender,notnull" json:"sender"`
	Content   string         `bun:"content,notnull" json:"content"`
	Metadata  map[string]any `bun:"message_metadata,type:jsonb" json:"message_metadata"`
	Timestamp time.Time      `bun:"timestamp,notnull,default:current_timestamp" json:"timestamp"`
}

type FallbackHelpRequest struct {
	bun.BaseModel `bun:"table:fallback_help_requests,alias:f"`

	ID        uuid.UUID `bun:"help_id,pk,type:uuid" json:"help_id"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	SessionID uuid.UUID `bun:"session_id,notnull,type:uuid" json:"session_id"`
	Notes     *string   `bun:"notes" json:"notes"`
	Resolved  bool      `bun:"resolved,notnull,default:false" json:"resolved"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// AccountInfo is the public view of an account.
type AccountInfo struct {
	AccountNumber string `json:"account_number"`
	AccountType   string `json:"account_type"`
	Balance       Money  `json:"balance"`
	Currency      string `json:"currency"`
}

func (a *Account) Info() AccountInfo {
	return AccountInfo{
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType,
		Balance:       a.Balance,
		Currency:      a.Currency,
	}
}
