package eventbus

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

// Subject hierarchy for generation events. Subjects are
// "post.generated.<dataset-id>" (or "post.generated.custom" when no
// dataset backs the request).
const (
	StreamName      = "POSTS"
	SubjectPrefix   = "post.generated"
	SubjectWildcard = SubjectPrefix + ".*"
)

// Bus wraps the NATS connection used to fan out generation events to
// downstream consumers (analytics refreshers, webhooks).
type Bus struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// Connect dials NATS and sets up the JetStream event stream. The stream
// add is idempotent for a matching config.
func Connect(url string) (*Bus, error) {
	nc, err := nats.Connect(url,
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectWildcard},
	})
	if err != nil && err != nats.ErrStreamNameAlreadyInUse {
		nc.Close()
		return nil, err
	}

	return &Bus{conn: nc, js: js}, nil
}

// Publish appends an event to the stream under the given subject
func (b *Bus) Publish(subject string, event interface{}) error {
	if b == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = b.js.Publish(subject, payload)
	return err
}

// Connected reports whether the underlying connection is up
func (b *Bus) Connected() bool {
	return b != nil && b.conn != nil && b.conn.IsConnected()
}

// Subscribe attaches a handler to generation events
func (b *Bus) Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error) {
	if b == nil {
		return nil, nats.ErrConnectionClosed
	}
	return b.conn.Subscribe(subject, handler)
}

// Close drains the connection
func (b *Bus) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}
