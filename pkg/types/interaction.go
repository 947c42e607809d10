// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Role tags a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry of a prompt.
type Message struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Task names one of the fixed prompt shapes.
type Task string

const (
	TaskAsk     Task = "ask"
	TaskSteps   Task = "steps"
	TaskAnalyze Task = "analyze"
	TaskPolish  Task = "polish"
)

// Interaction is one recorded round trip to the language model.
type Interaction struct {
	ID          string        `json:"id" yaml:"id"`
	RequestID   string        `json:"request_id" yaml:"request_id"`
	Task        Task          `json:"task" yaml:"task"`
	Document    string        `json:"document,omitempty" yaml:"document,omitempty"`
	Model       string        `json:"model" yaml:"model"`
	Input       string        `json:"input" yaml:"input"`
	PromptChars int           `json:"prompt_chars" yaml:"prompt_chars"`
	Response    string        `json:"response" yaml:"response"`
	Error       string        `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt   time.Time     `json:"started_at" yaml:"started_at"`
	Elapsed     time.Duration `json:"elapsed" yaml:"elapsed"`
}
