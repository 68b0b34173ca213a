package notifications

// PresentationTag tells the client which icon/color family to render a
// notification with.
type PresentationTag string

const (
	TagAlert    PresentationTag = "alert"
	TagWarning  PresentationTag = "warning"
	TagPayment  PresentationTag = "payment"
	TagTicket   PresentationTag = "ticket"
	TagEvent    PresentationTag = "event"
	TagPromo    PresentationTag = "promo"
	TagSecurity PresentationTag = "security"
	TagInfo     PresentationTag = "info"
)

type classificationKey struct {
	Type     NotificationType
	Priority NotificationPriority
}

// presentationTags is built over the full (type, priority) domain so Classify
// reduces to one lookup. Urgent and high priority override the type-based tag.
var presentationTags = buildClassificationTable()

func buildClassificationTable() map[classificationKey]PresentationTag {
	byType := map[NotificationType]PresentationTag{
		NotificationTypePayment:  TagPayment,
		NotificationTypeTicket:   TagTicket,
		NotificationTypeEvent:    TagEvent,
		NotificationTypePromo:    TagPromo,
		NotificationTypeSecurity: TagSecurity,
		NotificationTypeSystem:   TagInfo,
	}

	table := make(map[classificationKey]PresentationTag, len(byType)*3)
	for _, typ := range KnownTypes() {
		for _, prio := range KnownPriorities() {
			var tag PresentationTag
			switch prio {
			case NotificationPriorityUrgent:
				tag = TagAlert
			case NotificationPriorityHigh:
				tag = TagWarning
			default:
				tag = byType[typ]
			}
			table[classificationKey{Type: typ, Priority: prio}] = tag
		}
	}
	return table
}

// Classify maps a (type, priority) pair to its presentation tag. Total:
// combinations outside the table fall back to priority overrides first, then
// to the neutral info tag.
func Classify(typ NotificationType, priority NotificationPriority) PresentationTag {
	if tag, ok := presentationTags[classificationKey{Type: typ, Priority: priority}]; ok {
		return tag
	}

	// Unknown type: priority overrides still apply
	switch priority {
	case NotificationPriorityUrgent:
		return TagAlert
	case NotificationPriorityHigh:
		return TagWarning
	}
	return TagInfo
}
