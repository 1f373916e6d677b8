package main

import (
	"fmt"

	"github.com/latchwire/reactive"
)

func main() {
	a := reactive.NewSource(1)
	b := reactive.NewSource(2)

	sum := reactive.NewComputed2(a, b, func(a, b int) (int, error) {
		fmt.Println("  [COMPUTED] summing:", a, b)
		return a + b, nil
	})

	doubled := reactive.NewComputed1[int](sum, func(s int) (int, error) {
		fmt.Println("  [COMPUTED] doubling:", s)
		return s * 2, nil
	})

	unsubscribe := doubled.Subscribe(func(r reactive.Result[int]) {
		if r.IsFailure() {
			fmt.Println("  [OBSERVER] failed:", r.Err)
			return
		}
		fmt.Println("  [OBSERVER] doubled is now:", r.Value)
	})
	defer unsubscribe()

	fmt.Println("\nWriting a and b in a batch...")
	reactive.Batch(func() {
		a.Write(10)
		b.Write(20)
	})

	fmt.Println("\nExpected: sum and doubled each compute once (30, 60),")
	fmt.Println("not once per write — that's the whole point of Batch.")
}
