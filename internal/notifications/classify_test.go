package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyUrgentOverridesType(t *testing.T) {
	for _, typ := range KnownTypes() {
		assert.Equal(t, TagAlert, Classify(typ, NotificationPriorityUrgent), "type %s", typ)
	}
}

func TestClassifyHighOverridesType(t *testing.T) {
	for _, typ := range KnownTypes() {
		assert.Equal(t, TagWarning, Classify(typ, NotificationPriorityHigh), "type %s", typ)
	}
}

func TestClassifyNormalUsesTypeTag(t *testing.T) {
	cases := map[NotificationType]PresentationTag{
		NotificationTypePayment:  TagPayment,
		NotificationTypeTicket:   TagTicket,
		NotificationTypeEvent:    TagEvent,
		NotificationTypePromo:    TagPromo,
		NotificationTypeSecurity: TagSecurity,
		NotificationTypeSystem:   TagInfo,
	}
	for typ, want := range cases {
		assert.Equal(t, want, Classify(typ, NotificationPriorityNormal), "type %s", typ)
	}
}

func TestClassifyTotal(t *testing.T) {
	// Every known combination resolves to a non-empty tag.
	for _, typ := range KnownTypes() {
		for _, prio := range KnownPriorities() {
			assert.NotEmpty(t, Classify(typ, prio), "%s/%s", typ, prio)
		}
	}
}

func TestClassifyUnknownInputs(t *testing.T) {
	assert.Equal(t, TagInfo, Classify("carrier_pigeon", NotificationPriorityNormal))
	assert.Equal(t, TagAlert, Classify("carrier_pigeon", NotificationPriorityUrgent))
	assert.Equal(t, TagWarning, Classify("carrier_pigeon", NotificationPriorityHigh))
	assert.Equal(t, TagInfo, Classify(NotificationTypePayment, "whisper"))
}
