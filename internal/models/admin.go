// internal/models/admin.go
package models

// AuditLog records a mutating request made through the console.
type AuditLog struct {
	BaseModel
	UserID       string `json:"user_id" gorm:"size:64;index"`
	Action       string `json:"action" gorm:"size:100;not null;index"`
	ResourceType string `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   string `json:"resource_id" gorm:"size:64;index"`
	NewValues    JSONB  `json:"new_values" gorm:"type:text"`
	Status       int    `json:"status"`
	IPAddress    string `json:"ip_address" gorm:"size:45"`
	UserAgent    string `json:"user_agent" gorm:"type:text"`
	RequestID    string `json:"request_id" gorm:"size:36"`
}
