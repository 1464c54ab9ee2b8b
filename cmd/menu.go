package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worktracker/internal/prompt"
	"github.com/Tiliavir/worktracker/internal/render"
	"github.com/Tiliavir/worktracker/internal/tracker"
)

// interruptFunc derives the context day entry runs under; cancelling it
// saves the day and ends the program.
type interruptFunc func(ctx context.Context) (context.Context, context.CancelFunc)

// onSignal cancels day entry on SIGINT or SIGTERM.
func onSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func runMenu(cmd *cobra.Command, args []string) error {
	e := mustEnv(cmd)

	// Ctrl-C is swallowed everywhere but day entry. signal delivers without
	// blocking, so a full buffer simply drops further interrupts.
	ignored := make(chan os.Signal, 1)
	signal.Notify(ignored, os.Interrupt)
	defer signal.Stop(ignored)

	return menu(cmd.Context(), e.tracker, e.in, e.out, cmd.ErrOrStderr(), onSignal)
}

// menu runs the numbered menu until Quit, end of input or an interrupt
// during day entry. Operation errors are reported and the menu is shown
// again.
func menu(ctx context.Context, t *tracker.Tracker, in *prompt.Prompter, out *render.Renderer, errOut io.Writer, interrupt interruptFunc) error {
	for {
		_, inProgress, err := t.InProgress()
		if err != nil {
			fmt.Fprintf(errOut, "Warning: %v\n", err)
		}

		out.Banner("WORK HOURS TRACKER")
		out.Printf("\n")
		if inProgress {
			out.Warning("Day in progress detected!")
			out.Printf("\n")
			out.Printf("1. Continue/Complete current day\n")
		} else {
			out.Printf("1. New day\n")
		}
		out.Printf("2. Add past day\n")
		out.Printf("3. Modify entry\n")
		out.Printf("4. View current status\n")
		out.Printf("5. Cancel current day\n")
		out.Printf("6. View history\n")
		out.Printf("7. Reset data\n")
		out.Printf("8. Quit\n")

		choice, err := in.ReadLine(ctx, "\nChoice: ")
		if err != nil {
			return quitOn(err, out)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			dayCtx, stop := interrupt(ctx)
			err = t.StartDay(dayCtx)
			stop()
		case "2":
			err = t.AddPastDay(ctx)
		case "3":
			err = t.ModifyEntry(ctx)
		case "4":
			err = t.ShowStatus()
		case "5":
			err = t.CancelDay(ctx)
		case "6":
			t.ShowHistory("")
		case "7":
			err = t.Reset(ctx)
		case "8":
			out.Printf("\nGoodbye!\n")
			return nil
		default:
			out.Printf("\nInvalid choice.\n")
		}

		if errors.Is(err, prompt.ErrInterrupted) || errors.Is(err, prompt.ErrAborted) {
			return quitOn(err, out)
		}
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}
}

// quitOn maps the end of an interactive session to a clean exit.
func quitOn(err error, out *render.Renderer) error {
	switch {
	case errors.Is(err, prompt.ErrInterrupted):
		out.Printf("\n")
		return nil
	case errors.Is(err, prompt.ErrAborted):
		out.Printf("\nGoodbye!\n")
		return nil
	}
	return err
}
