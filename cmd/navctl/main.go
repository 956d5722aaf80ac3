// Command navctl is a small terminal client for the navigation API.
//
//	navctl [-url URL] [-user NAME] health
//	navctl [-url URL] [-user NAME] whoami
//	navctl [-url URL] [-user NAME] list [query]
//	navctl [-url URL] [-user NAME] export
//	navctl [-url URL] [-user NAME] import FILE
//
// The password is read from NAVCTL_PASSWORD or prompted for without echo.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "navctl:", err)
		os.Exit(1)
	}
}
