package engine

import (
	"testing"

	"github.com/weftlabs/weft/pkg/api"
)

func drain(q *tokenQueue) []string {
	var names []string
	for {
		tok, ok := q.pop()
		if !ok {
			return names
		}
		names = append(names, tok.Step)
	}
}

func TestTokenQueueOrdering(t *testing.T) {
	q := &tokenQueue{}
	q.pushTail(api.Token{Step: "a"})
	q.pushTail(api.Token{Step: "b"})
	q.pushHead(api.Token{Step: "c"})
	q.pushHead(api.Token{Step: "d"})
	q.pushTail(api.Token{Step: "e"})

	got := drain(q)
	want := []string{"d", "c", "a", "b", "e"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestTokenQueuePopEmpty(t *testing.T) {
	q := &tokenQueue{}
	if _, ok := q.pop(); ok {
		t.Fatalf("pop on an empty queue must report !ok")
	}
}

func TestEnqueuePanicsOnMultiplePayloads(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for multiple payloads")
		}
	}()
	e := enqueue{q: &tokenQueue{}}
	e.Tail("step", 1, 2)
}

func TestEnqueueDefaultVersusExplicitPayload(t *testing.T) {
	q := &tokenQueue{}
	e := enqueue{q: q, def: "fallback"}

	e.Tail("omitted")
	e.Tail("explicit", 42)
	e.Tail("explicitNil", nil)

	if tok, _ := q.pop(); tok.Payload != "fallback" {
		t.Fatalf("expected default payload, got %v", tok.Payload)
	}
	if tok, _ := q.pop(); tok.Payload != 42 {
		t.Fatalf("expected explicit payload, got %v", tok.Payload)
	}
	if tok, _ := q.pop(); tok.Payload != nil {
		t.Fatalf("expected explicit nil payload, got %v", tok.Payload)
	}
}
