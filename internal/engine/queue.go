package engine

import (
	"fmt"

	"github.com/weftlabs/weft/pkg/api"
)

// tokenQueue is the run-local double-ended token queue. Tail pushes are FIFO;
// head pushes land in front of everything queued, so successive head pushes
// within one decision are LIFO relative to each other.
//
// A queue belongs to exactly one run and is never shared, so no locking.
type tokenQueue struct {
	items []api.Token
}

func (q *tokenQueue) pushHead(t api.Token) {
	q.items = append([]api.Token{t}, q.items...)
}

func (q *tokenQueue) pushTail(t api.Token) {
	q.items = append(q.items, t)
}

func (q *tokenQueue) pop() (api.Token, bool) {
	if len(q.items) == 0 {
		return api.Token{}, false
	}
	t := q.items[0]
	q.items = q.items[1:]
	return t, true
}

func (q *tokenQueue) len() int {
	return len(q.items)
}

// enqueue implements api.Enqueue for one loop iteration. def is the producing
// step's result value, substituted when a decision omits the payload.
type enqueue struct {
	q   *tokenQueue
	def any
}

var _ api.Enqueue = enqueue{}

func (e enqueue) Head(step string, payload ...any) {
	e.q.pushHead(api.Token{Step: step, Payload: e.pick(payload)})
}

func (e enqueue) Tail(step string, payload ...any) {
	e.q.pushTail(api.Token{Step: step, Payload: e.pick(payload)})
}

func (e enqueue) pick(payload []any) any {
	switch len(payload) {
	case 0:
		return e.def
	case 1:
		return payload[0]
	default:
		panic(fmt.Sprintf("weft: enqueue accepts at most one payload, got %d", len(payload)))
	}
}
