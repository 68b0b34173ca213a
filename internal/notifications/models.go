package notifications

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypePayment  NotificationType = "payment"
	NotificationTypeTicket   NotificationType = "ticket"
	NotificationTypeEvent    NotificationType = "event"
	NotificationTypePromo    NotificationType = "promo"
	NotificationTypeSecurity NotificationType = "security"
	NotificationTypeSystem   NotificationType = "system"
)

// KnownTypes lists every type the backend emits.
func KnownTypes() []NotificationType {
	return []NotificationType{
		NotificationTypePayment,
		NotificationTypeTicket,
		NotificationTypeEvent,
		NotificationTypePromo,
		NotificationTypeSecurity,
		NotificationTypeSystem,
	}
}

type NotificationPriority string

const (
	NotificationPriorityNormal NotificationPriority = "normal"
	NotificationPriorityHigh   NotificationPriority = "high"
	NotificationPriorityUrgent NotificationPriority = "urgent"
)

func KnownPriorities() []NotificationPriority {
	return []NotificationPriority{
		NotificationPriorityNormal,
		NotificationPriorityHigh,
		NotificationPriorityUrgent,
	}
}

type Notification struct {
	ID        uuid.UUID            `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID            `json:"user_id" gorm:"type:uuid;not null;index"`
	Type      NotificationType     `json:"type" gorm:"type:varchar(20);not null"`
	Priority  NotificationPriority `json:"priority" gorm:"type:varchar(10);not null;default:'normal'"`
	Title     string               `json:"title" gorm:"not null;size:255"`
	Message   string               `json:"message" gorm:"type:text"`
	ActionURL string               `json:"action_url" gorm:"size:500"`
	IsRead    bool                 `json:"is_read" gorm:"not null;default:false;index"`
	ReadAt    *time.Time           `json:"read_at,omitempty"`
	CreatedAt time.Time            `json:"created_at" gorm:"autoCreateTime;index:,sort:desc"`
	UpdatedAt time.Time            `json:"updated_at" gorm:"autoUpdateTime"`
}

type NotificationResponse struct {
	ID        string               `json:"id"`
	Type      NotificationType     `json:"type"`
	Priority  NotificationPriority `json:"priority"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	ActionURL string               `json:"action_url,omitempty"`
	IsRead    bool                 `json:"is_read"`
	Tag       PresentationTag      `json:"tag"`
	CreatedAt time.Time            `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

func toResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Priority:  n.Priority,
		Title:     n.Title,
		Message:   n.Message,
		ActionURL: n.ActionURL,
		IsRead:    n.IsRead,
		Tag:       Classify(n.Type, n.Priority),
		CreatedAt: n.CreatedAt,
	}
}
