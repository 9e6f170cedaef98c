package weft_test

import (
	"context"
	"fmt"
	"log"

	"github.com/weftlabs/weft"
)

// Example_builder demonstrates defining and running a simple workflow with
// the fluent builder API.
func Example_builder() {
	ctx := context.Background()

	flow := weft.New("greeting").
		Step("sayHello", func(ctx context.Context, st weft.State, payload any) (any, error) {
			return fmt.Sprintf("hello, %s", payload), nil
		}, weft.WithDecision(weft.DecideTo("decorate", weft.Tail))).
		Step("decorate", func(ctx context.Context, st weft.State, payload any) (any, error) {
			return fmt.Sprintf("*** %s ***", payload), nil
		}).
		MustBuild()

	st, _, err := flow.Run(ctx, "sayHello", "Gopher")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(st["result.decorate"])
	// Output: *** hello, Gopher ***
}

// Example_decisions demonstrates conditional routing with DecideIfElse.
func Example_decisions() {
	ctx := context.Background()

	isEven := func(st weft.State, res weft.Result) bool {
		return res.Value.(int)%2 == 0
	}

	flow := weft.New("parity").
		Step("classify", func(ctx context.Context, st weft.State, payload any) (any, error) {
			return payload, nil
		}, weft.WithDecision(weft.DecideIfElse(isEven,
			weft.To("even", weft.Tail),
			weft.To("odd", weft.Tail),
		))).
		Step("even", func(ctx context.Context, st weft.State, payload any) (any, error) {
			return "even", nil
		}).
		Step("odd", func(ctx context.Context, st weft.State, payload any) (any, error) {
			return "odd", nil
		}).
		MustBuild()

	st, _, err := flow.Run(ctx, "classify", 7)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(st["result.odd"])
	// Output: odd
}
