package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"

	"git.sr.ht/~whereswaldon/chartkit/backend"
	"git.sr.ht/~whereswaldon/chartkit/chart"
)

func main() {
	variantName := flag.String("variant", chart.StackedBar.String(), "chart variant to draw (line, multiline, bar, grouped, stacked, pie, doughnut)")
	labels := flag.Int("labels", 5, "number of y-axis label intervals")
	flag.Parse()

	variant, err := chart.ParseVariant(*variantName)
	if err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	mutator := stream.NewMutator(ctx, time.Second)
	bundle := backend.NewBundle(mutator, variant)
	if path := flag.Arg(0); path != "" {
		bundle.Datasource.Open(path)
	}

	go func() {
		w := app.NewWindow(app.Title("Chartkit"))
		err := loop(ctx, w, bundle, *labels)
		cancel()
		if shutdownErr := mutator.Shutdown(); shutdownErr != nil {
			log.Printf("failed shutting down: %v", shutdownErr)
		}
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(ctx context.Context, w *app.Window, bundle backend.Bundle, labels int) error {
	expl := explorer.NewExplorer(w)
	ui := NewUI(backend.NewWindowState(ctx, bundle, w), expl, labels)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
