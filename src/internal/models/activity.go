package models

import "time"

// ActivityMessage is published to RabbitMQ for every auditable admin action.
type ActivityMessage struct {
	UserID      string            `json:"user_id,omitempty"`
	Username    string            `json:"username,omitempty"`
	ServiceName string            `json:"service_name"`
	Action      string            `json:"action"`
	IPAddress   string            `json:"ip_address,omitempty"`
	UserAgent   string            `json:"user_agent,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Activity action constants
const (
	ActionLogin        = "login"
	ActionLoginFailed  = "login_failed"
	ActionTokenVerify  = "token_verify"
	ActionRecipeCreate = "recipe_create"
	ActionRecipeUpdate = "recipe_update"
	ActionRecipeDelete = "recipe_delete"
)

// Service name constants
const (
	ServiceAuthHandler   = "recipebox.handler.auth"
	ServiceAuthGate      = "recipebox.middleware.auth"
	ServiceRecipeHandler = "recipebox.handler.recipe"
)
