package models

import "time"

// Ticket statuses and priorities
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketPending    = "pending"
	TicketResolved   = "resolved"

	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Ticket represents the tickets table. TicketID is allocated once at
// creation (TIC<n>, unique per hospital) and never regenerated.
type Ticket struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HospitalID  uint      `gorm:"not null;uniqueIndex:idx_ticket_hospital_tid" json:"hospital_id"`
	TicketID    string    `gorm:"column:ticket_id;size:50;not null;uniqueIndex:idx_ticket_hospital_tid" json:"ticket_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	DeviceID    *uint     `gorm:"index" json:"device_id"`
	Category    string    `gorm:"size:50;default:'hardware'" json:"category"`
	Priority    string    `gorm:"type:enum('low','medium','high','critical');default:'medium'" json:"priority"`
	Status      string    `gorm:"type:enum('open','in_progress','pending','resolved');default:'open'" json:"status"`
	Location    string    `gorm:"size:100;not null" json:"location"`
	CreatedByID *uint     `gorm:"index" json:"created_by_id"`
	AssignedTo  *uint     `gorm:"column:assigned_to_id;index" json:"assigned_to_id"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Hospital  Hospital        `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Device    *Device         `gorm:"foreignKey:DeviceID" json:"device,omitempty"`
	CreatedBy *Employee       `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Assignee  *Employee       `gorm:"foreignKey:AssignedTo" json:"assigned_to,omitempty"`
	Comments  []TicketComment `gorm:"foreignKey:TicketRowID" json:"comments,omitempty"`
}

// TableName specifies the table name for Ticket model
func (Ticket) TableName() string {
	return "tickets"
}

// TicketComment is a comment on a ticket, optionally with a file attachment
type TicketComment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TicketRowID uint      `gorm:"column:ticket_row_id;not null;index" json:"ticket_row_id"`
	AuthorID    *uint     `gorm:"index" json:"author_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	File        string    `gorm:"size:255" json:"file,omitempty"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Ticket Ticket    `gorm:"foreignKey:TicketRowID" json:"ticket,omitempty"`
	Author *Employee `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName specifies the table name for TicketComment model
func (TicketComment) TableName() string {
	return "ticket_comments"
}
