// Command fbhostd runs a function block host: a single TCP listener
// speaking the length-prefixed wire protocol over a single function block
// hierarchy whose root holds Embedded Resources. It takes no arguments.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/brightloop/fbhost"
)

func main() {
	if os.Getenv("FBHOST_LOG_LEVEL") == "debug" {
		log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	} else {
		log.SetFlags(log.Ldate | log.Ltime)
	}

	factory := fbhost.NewFactory()
	fbhost.RegisterStandardTypes(factory)

	metrics := fbhost.NewDefaultMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fbhost.ListenAndServe(ctx, factory, fbhost.WithContext(ctx), fbhost.WithMetrics(metrics)); err != nil {
		log.Fatalf("[fbhostd] %v", err)
	}
}
