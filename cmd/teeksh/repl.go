package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/teekgo/teek/bridge"
	"github.com/teekgo/teek/codec"
)

const (
	historyFile = ".teeksh_history"
	promptMain  = "% "
	promptCont  = "> "
)

// runRepl reads Tcl commands with line editing and history. The
// reader runs on its own goroutine so the loop goroutine can keep
// pumping Tk events; every evaluation is queued back to the loop
// through the app's cross-goroutine dispatch.
func runRepl(ctx context.Context, app *bridge.App) error {
	if err := app.EnableThreads(ctx); err != nil {
		_ = app.Quit(ctx)
		return err
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		readLoop(ctx, app, ln)
		_ = app.Quit(ctx)
	}()

	err := app.Run(ctx)
	<-done
	return err
}

func readLoop(ctx context.Context, app *bridge.App, ln *liner.State) {
	for {
		code, ok := readCommand(ctx, app, ln)
		if !ok {
			fmt.Println()
			return
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == "exit" {
			return
		}

		result, err := app.Eval(ctx, codec.Opaque(), code)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			continue
		}
		if s, _ := result.(string); s != "" {
			fmt.Println(s)
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readCommand accumulates lines until Tcl's own parser considers the
// buffer a complete command, the same probe tclsh uses for its
// secondary prompt.
func readCommand(ctx context.Context, app *bridge.App, ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		complete, err := app.Call(ctx, codec.Bool(), "info", "complete", src)
		if err != nil {
			return src, true
		}
		if done, _ := complete.(bool); done {
			return src, true
		}
	}
}
