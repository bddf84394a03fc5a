package functions

import (
	"context"

	"github.com/kasuganosora/datapad/model"
)

// Events list in the order they were recorded.
var timeline = collection{Kind: "timeline event", Order: "id"}

func (s *Service) getTimeline(ctx context.Context, _ Event) (any, error) {
	return listRecords[model.TimelineEvent](ctx, s.db, timeline)
}

func (s *Service) insertTimelineEvent(ctx context.Context, ev Event) (any, error) {
	var e model.TimelineEvent
	if err := decodeRecord(ev, "event", &e); err != nil {
		return nil, err
	}
	if err := insertRecord(ctx, s.db, timeline, e.Name, &e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) editTimelineEvent(ctx context.Context, ev Event) (any, error) {
	var e model.TimelineEvent
	if err := decodeRecord(ev, "event", &e); err != nil {
		return nil, err
	}
	if err := editRecord(ctx, s.db, timeline, e.Name, &e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) deleteTimelineEvent(ctx context.Context, ev Event) (any, error) {
	name, err := param(ev, "eventName")
	if err != nil {
		return nil, err
	}
	if err := deleteRecord[model.TimelineEvent](ctx, s.db, timeline, name); err != nil {
		return nil, err
	}
	return deleted{Name: name}, nil
}
