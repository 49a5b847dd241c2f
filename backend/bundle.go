package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// WindowState bundles the per-window handles the UI needs to reach the
// backend.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle holds the application-wide backend services.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle(mutator *stream.Mutator, variant chart.Variant) Bundle {
	return Bundle{
		Datasource: NewDatasource(mutator, variant),
	}
}
