package domain

import (
	"context"
	"time"
)

// RawMessage is an unprocessed record from the source topic. Value carries a
// RawRecord as flat JSON keyed by the extract's column headers.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputMessage is the serialized LandRecord destined for the sink topic.
type OutputMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
