// Command agentlink links agent configuration assets from a repository into
// the per-user target directory.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/agentlink/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
		// The install lock is released by the OS with the process
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render("interrupted"))
		os.Exit(1)
	}()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !isReported(err) {
			fmt.Fprintln(stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		return 1
	}
	return 0
}
