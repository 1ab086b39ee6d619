package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"news_backend/internal/feature/comments/domain/entity"
)

// fakeConn records published messages.
type fakeConn struct {
	subjects []string
	payloads [][]byte
	pubErr   error
	closed   bool
	drained  bool
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	if f.pubErr != nil {
		return f.pubErr
	}
	f.subjects = append(f.subjects, subj)
	f.payloads = append(f.payloads, data)
	return nil
}

func (f *fakeConn) Drain() error   { f.drained = true; return nil }
func (f *fakeConn) IsClosed() bool { return f.closed }
func (f *fakeConn) Close()         { f.closed = true }

func TestPublisher_PublishCommentCreated(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	comment := &entity.Comment{ID: "c1", NewsID: "n1", UserID: "u1", Content: "not published", CreatedAt: createdAt}

	t.Run("success: payload published on subject", func(t *testing.T) {
		t.Parallel()

		nc := &fakeConn{}
		p := newPublisher(nc, zap.NewNop())

		require.NoError(t, p.PublishCommentCreated(context.Background(), comment))

		require.Len(t, nc.subjects, 1)
		assert.Equal(t, CommentCreatedSubject, nc.subjects[0])

		var got CommentCreatedPayload
		require.NoError(t, json.Unmarshal(nc.payloads[0], &got))
		assert.Equal(t, CommentCreatedPayload{ID: "c1", NewsID: "n1", UserID: "u1", CreatedAt: createdAt}, got)
		assert.NotContains(t, string(nc.payloads[0]), "not published", "content must not be part of the event")
	})

	t.Run("failure: publish error is wrapped", func(t *testing.T) {
		t.Parallel()

		pubErr := errors.New("nats: connection closed")
		p := newPublisher(&fakeConn{pubErr: pubErr}, zap.NewNop())

		err := p.PublishCommentCreated(context.Background(), comment)

		assert.ErrorIs(t, err, pubErr)
	})

	t.Run("failure: cancelled context", func(t *testing.T) {
		t.Parallel()

		nc := &fakeConn{}
		p := newPublisher(nc, zap.NewNop())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := p.PublishCommentCreated(ctx, comment)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, nc.subjects)
	})
}

func TestPublisher_Close(t *testing.T) {
	t.Parallel()

	nc := &fakeConn{}
	p := newPublisher(nc, zap.NewNop())

	p.Close()
	assert.True(t, nc.drained)
	assert.True(t, nc.closed)

	nc.drained = false
	p.Close()
	assert.False(t, nc.drained, "closed connection should not be drained again")
}
