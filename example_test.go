package chunkz_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/zoobzio/chunkz"
)

// Batch a burst of values into groups of three using the channel
// pipeline form.
func ExampleChunker_Process() {
	in := make(chan chunkz.Result[int], 7)
	for i := 1; i <= 7; i++ {
		in <- chunkz.NewSuccess(i)
	}
	close(in)

	chunker := chunkz.NewChunker(in, chunkz.Config{
		Capacity: 3,
		MaxWait:  time.Second,
	}, chunkz.RealClock)

	for result := range chunker.Process(context.Background()) {
		fmt.Println(result.Value())
	}
	// Output:
	// [1 2 3]
	// [4 5 6]
	// [7]
}

// Consume a Chunker as a pull stream with Next.
func ExampleChunker_Next() {
	in := make(chan chunkz.Result[string], 2)
	in <- chunkz.NewSuccess("alpha")
	in <- chunkz.NewSuccess("beta")
	close(in)

	chunker := chunkz.NewChunker(in, chunkz.Config{Capacity: 8}, chunkz.RealClock)

	ctx := context.Background()
	for {
		batch, err := chunker.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Println("stream failed:", err)
			break
		}
		fmt.Println(batch)
	}
	// Output:
	// [alpha beta]
}
