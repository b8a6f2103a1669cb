package town

import (
	"fmt"

	"go.uber.org/zap"

	"dzone/internal/actor"
)

type line struct {
	channel string
	text    string
}

// speechQueue holds a user's pending lines. One line is spoken at a time.
type speechQueue struct {
	pending  []line
	speaking bool
}

// Say queues a line for uid. It is spoken once earlier lines have finished,
// and everyone in town hears it when it starts.
func (t *Town) Say(uid, channel, text string) error {
	if text == "" {
		return fmt.Errorf("empty message from %s", uid)
	}
	if _, err := t.Join(uid, "", ""); err != nil {
		return err
	}
	q, ok := t.speech[uid]
	if !ok {
		q = &speechQueue{}
		t.speech[uid] = q
	}
	q.pending = append(q.pending, line{channel: channel, text: text})
	if !q.speaking {
		t.speakNext(uid)
	}
	return nil
}

// Pending returns how many lines uid has yet to start.
func (t *Town) Pending(uid string) int {
	if q, ok := t.speech[uid]; ok {
		return len(q.pending)
	}
	return 0
}

func (t *Town) speakNext(uid string) {
	q := t.speech[uid]
	speaker := t.actors[uid]
	if len(q.pending) == 0 {
		q.speaking = false
		return
	}
	next := q.pending[0]
	q.pending = q.pending[1:]
	q.speaking = true

	speaker.StartTalking(next.text, next.channel, func() { t.speakNext(uid) })
	t.log.Debug("speaking", zap.String("uid", uid), zap.String("channel", next.channel))

	msg := actor.Message{Channel: next.channel, From: speaker, Text: next.text}
	for _, a := range t.order {
		a.OnMessage(msg)
	}
}
