package activity

import (
	"strconv"
	"strings"
	"time"
)

// ObjectTypeComponent is the object type of every lifecycle event.
const ObjectTypeComponent = "component"

// LifecycleEventInput describes one lifecycle occurrence of an instance.
type LifecycleEventInput struct {
	UID        uint64
	ParentUID  *uint64
	Component  string
	Hook       string
	Path       string
	ActorID    string
	UserID     string
	TenantID   string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildHookEvent builds the event emitted when a lifecycle hook is
// dispatched. The verb is "component.<hook>".
func BuildHookEvent(input LifecycleEventInput) Event {
	return buildLifecycleEvent("component."+strings.TrimSpace(input.Hook), input)
}

// BuildInitFailedEvent builds the event emitted when initialization fails.
func BuildInitFailedEvent(input LifecycleEventInput, err error) Event {
	event := buildLifecycleEvent("component.init_failed", input)
	if err != nil {
		event.Metadata = ensureMetadata(event.Metadata)
		event.Metadata["error"] = err.Error()
	}
	return event
}

func buildLifecycleEvent(verb string, input LifecycleEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Hook != "" {
		metadata = ensureMetadata(metadata)
		metadata["hook"] = input.Hook
	}
	if input.Path != "" {
		metadata = ensureMetadata(metadata)
		metadata["path"] = input.Path
	}

	var parentID string
	if input.ParentUID != nil {
		parentID = strconv.FormatUint(*input.ParentUID, 10)
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: ObjectTypeComponent,
		ObjectID:   strconv.FormatUint(input.UID, 10),
		Channel:    strings.TrimSpace(input.Channel),
		Component:  strings.TrimSpace(input.Component),
		ParentID:   parentID,
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
