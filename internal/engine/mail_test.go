package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"empire-service/internal/repository/model"
)

func TestCanSendMessage(t *testing.T) {
	tests := []struct {
		name       string
		senderId   string
		toId       string
		laws       func(w *model.World)
		wantReason Reason
	}{
		{
			name:     "domestic mail ignores censorship",
			senderId: "alice", toId: "kord",
			laws: func(w *model.World) { w.Country("A").Laws.MailCensorship = true },
		},
		{
			name:     "cross-nation mail without censorship",
			senderId: "alice", toId: "bob",
		},
		{
			name:     "sender nation censors outgoing mail",
			senderId: "alice", toId: "bob",
			laws:       func(w *model.World) { w.Country("A").Laws.MailCensorship = true },
			wantReason: ReasonCensored,
		},
		{
			name:     "recipient nation censors incoming mail",
			senderId: "alice", toId: "bob",
			laws:       func(w *model.World) { w.Country("B").Laws.MailCensorship = true },
			wantReason: ReasonCensored,
		},
		{
			name:     "global authority bypasses censorship",
			senderId: "imperator", toId: "bob",
			laws: func(w *model.World) { w.Country("B").Laws.MailCensorship = true },
		},
		{
			name:     "censoring nation's own administrator writes out",
			senderId: "kord", toId: "bob",
			laws: func(w *model.World) { w.Country("A").Laws.MailCensorship = true },
		},
		{
			name:     "unknown recipient",
			senderId: "alice", toId: "ghost",
			wantReason: ReasonCitizenNotFound,
		},
	}

	e := testEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWorld()
			if tt.laws != nil {
				tt.laws(w)
			}

			err := e.CanSendMessage(sessionFor(w, tt.senderId), w, tt.toId)

			if tt.wantReason == "" {
				assert.NoError(t, err)
			} else {
				reason, ok := ReasonOf(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantReason, reason)
			}
		})
	}
}

func TestSendMessage(t *testing.T) {
	e := testEngine()

	t.Run("appends letter", func(t *testing.T) {
		w := testWorld()

		next, msg, err := e.SendMessage(sessionFor(w, "alice"), w, "bob", "salve")
		require.NoError(t, err)

		assert.Equal(t, "alice", msg.FromId)
		assert.Equal(t, "Alice", msg.FromName)
		assert.Equal(t, "bob", msg.ToId)
		assert.Equal(t, "salve", msg.Body)
		require.Len(t, next.Messages, 1)
		assert.Equal(t, msg, next.Messages[0])
		assert.Empty(t, w.Messages, "input snapshot untouched")
	})

	t.Run("empty body rejected", func(t *testing.T) {
		w := testWorld()

		_, _, err := e.SendMessage(sessionFor(w, "alice"), w, "bob", "")
		reason, ok := ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, ReasonIncomplete, reason)
	})

	t.Run("censored letter never stored", func(t *testing.T) {
		w := testWorld()
		w.Country("B").Laws.MailCensorship = true

		next, _, err := e.SendMessage(sessionFor(w, "alice"), w, "bob", "salve")
		reason, ok := ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, ReasonCensored, reason)
		assert.Nil(t, next)
	})
}
