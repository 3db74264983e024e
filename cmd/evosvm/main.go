package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := 0
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		klog.ErrorS(err, "Command failed")
		code = 1
	}

	stop()
	klog.Flush()
	os.Exit(code)
}
