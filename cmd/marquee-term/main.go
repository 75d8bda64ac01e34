package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/ytget/mediadl/internal/marquee"
	"github.com/ytget/mediadl/internal/term"
)

func main() {
	defaults := marquee.DefaultOptions()
	text := flag.String("text", defaults.Text, "ribbon text")
	speed := flag.Float64("speed", defaults.Speed, "cells per frame")
	direction := flag.String("direction", defaults.Direction.String(), "left or right")
	interactive := flag.Bool("interactive", true, "allow dragging with the mouse")
	class := flag.String("class", "primary bold", "space-separated style classes")
	flag.Parse()

	dir, err := marquee.ParseDirection(*direction)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// tcell owns the terminal, so log lines go to stderr only when redirected.
	log.SetOutput(logOutput())

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("failed to initialize screen: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	surface := term.NewSurface(screen, marquee.Options{
		Text:        *text,
		Speed:       *speed,
		Direction:   dir,
		Interactive: *interactive,
		ClassName:   *class,
	})
	err = surface.Run(ctx)
	screen.Fini()

	if err != nil && ctx.Err() == nil {
		log.Fatalf("marquee stopped: %v", err)
	}
}

func logOutput() *os.File {
	if fi, err := os.Stderr.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
		return os.Stderr
	}
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return os.Stderr
	}
	return devNull
}
