package usersink_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-component/pkg/activity"
	"github.com/goliatone/go-component/pkg/activity/usersink"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsLifecycleEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	tenantID := uuid.New()

	event := activity.Event{
		Verb:       "component.created",
		ActorID:    actorID.String(),
		TenantID:   tenantID.String(),
		UserID:     "not-a-uuid",
		ObjectType: activity.ObjectTypeComponent,
		ObjectID:   "12",
		Channel:    "components",
		Component:  "<TodoItem>",
		ParentID:   "4",
		Metadata:   map[string]any{"hook": "created"},
		OccurredAt: now,
	}

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != actorID || record.TenantID != tenantID {
		t.Fatalf("unexpected ids: %+v", record)
	}
	if record.UserID != uuid.Nil {
		t.Fatalf("expected invalid user id to map to uuid.Nil, got %s", record.UserID)
	}
	if record.Verb != "component.created" || record.ObjectType != "component" || record.ObjectID != "12" {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != "components" || !record.OccurredAt.Equal(now) {
		t.Fatalf("unexpected channel or time: %+v", record)
	}
	if record.Data["component"] != "<TodoItem>" || record.Data["parent_uid"] != "4" || record.Data["hook"] != "created" {
		t.Fatalf("unexpected data: %+v", record.Data)
	}
}

func TestHookNotifySkipsIncompleteEvents(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Event{})

	if len(sink.records) != 0 {
		t.Fatalf("expected no records for empty event, got %d", len(sink.records))
	}
	if err := (usersink.Hook{}).Notify(context.Background(), activity.Event{Verb: "x", ObjectType: "y", ObjectID: "z"}); err != nil {
		t.Fatalf("expected nil sink to be a no-op, got %v", err)
	}
}

func TestHookNotifyDefaultsTimestamp(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       "component.mounted",
		ObjectType: "component",
		ObjectID:   "1",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 || sink.records[0].OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be defaulted")
	}
}
