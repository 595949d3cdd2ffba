package model

import (
	"encoding/json"
	"time"
)

// Fragment é um trecho de prompt administrado pelo time (tabela furtive_prompts).
// As categorias LAYOUT, regras e tags possuem no máximo uma linha cada.
type Fragment struct {
	ID       string
	Category string
	Content  string
}

// ThemePrompt carrega os prompts associados a um tema de chat.
type ThemePrompt struct {
	ID            string
	ThemeID       string
	Title         string
	PromptFurtive string
	PatternPrompt string
	ActionPlan    bool
	CreatedAt     time.Time
}

type EntrepreneurProfile struct {
	ID         string
	UserEmail  string
	FullName   string
	Experience string
	Education  string
	Motivation string
}

type CompanyProfile struct {
	ID               string
	UserEmail        string
	CompanyName      string
	Sector           string
	Size             string
	ProductsServices string
	TargetAudience   string
	MainChallenges   string
}

type ChatMessage struct {
	ID        string    `json:"id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// PromptLog é o registro de auditoria de cada prompt montado (escrita única).
type PromptLog struct {
	ID           string          `json:"id,omitempty"`
	UserEmail    string          `json:"user_email"`
	SystemPrompt string          `json:"system_prompt"`
	UserMessage  string          `json:"user_message"`
	FullPayload  json.RawMessage `json:"full_payload,omitempty"`
	CreatedAt    time.Time       `json:"created_at,omitempty"`
}
