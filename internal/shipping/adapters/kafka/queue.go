package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

// pollWait bounds how long one PollNewShippings call blocks on an idle
// topic before returning what it has.
const pollWait = 2 * time.Second

// Queue consumes new-shipping announcements. Offsets are committed per
// fetched message, so a polled id is handed out at most once per group.
type Queue struct {
	reader *kafka.Reader
}

func NewQueue(brokers []string, groupID, topic string) *Queue {
	return &Queue{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
	}
}

// PollNewShippings fetches up to max shipping ids, returning early once the
// topic goes idle.
func (q *Queue) PollNewShippings(ctx context.Context, max int) ([]string, error) {
	var ids []string

	for len(ids) < max {
		fetchCtx, cancel := context.WithTimeout(ctx, pollWait)
		msg, err := q.reader.FetchMessage(fetchCtx)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				break
			}
			return ids, err
		}

		if err := q.reader.CommitMessages(ctx, msg); err != nil {
			return ids, err
		}

		ids = append(ids, string(msg.Value))
	}

	return ids, nil
}

func (q *Queue) Close() error {
	return q.reader.Close()
}
