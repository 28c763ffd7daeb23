package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/teekgo/teek/bridge"
	"github.com/teekgo/teek/codec"
	"github.com/teekgo/teek/interp"
)

func main() {
	var (
		evalCode    = flag.String("e", "", "Evaluate a Tcl script and print its result")
		interactive = flag.Bool("i", false, "Interactive console with TUI")
		debug       = flag.Bool("debug", false, "Log interpreter failures to stderr")
	)
	flag.Parse()

	if flag.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "Usage: teeksh [-e script]")
		fmt.Fprintln(os.Stderr, "       teeksh -i  (interactive console)")
		fmt.Fprintln(os.Stderr, "       teeksh < script.tcl")
		os.Exit(1)
	}

	log := zap.NewNop()
	if *debug {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	interp.SetLogger(log)

	if err := run(*evalCode, *interactive, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run owns the loop goroutine. The interpreter is created here and
// every Tcl call either happens here or is queued back here through
// the app's dispatch, so main must not migrate between modes while an
// app is live.
func run(evalCode string, interactive bool, log *zap.Logger) error {
	ctx := context.Background()

	in, err := interp.New()
	if err != nil {
		return fmt.Errorf("create interpreter: %w", err)
	}

	app, err := bridge.New(in, bridge.WithLogger(log))
	if err != nil {
		in.Destroy()
		return fmt.Errorf("wrap interpreter: %w", err)
	}

	if evalCode != "" {
		result, err := app.Eval(ctx, codec.Opaque(), evalCode)
		quitErr := app.Quit(ctx)
		if err != nil {
			return err
		}
		if s, _ := result.(string); s != "" {
			fmt.Println(s)
		}
		return quitErr
	}

	if interactive {
		return runInteractive(ctx, app)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return runRepl(ctx, app)
	}

	return runScript(ctx, app)
}

// runScript evaluates stdin as one Tcl script, the way tclsh treats a
// redirected input.
func runScript(ctx context.Context, app *bridge.App) error {
	var b strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		_ = app.Quit(ctx)
		return fmt.Errorf("read stdin: %w", err)
	}

	_, err := app.Eval(ctx, codec.Ignore(), b.String())
	quitErr := app.Quit(ctx)
	if err != nil {
		return err
	}
	return quitErr
}
