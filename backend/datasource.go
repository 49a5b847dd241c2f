package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/chartkit/chart"
	"github.com/fsnotify/fsnotify"
	"github.com/xuri/excelize/v2"
)

// ReadCSV reads a chart table from CSV data. Because the data may belong to a
// file that is still being written, a final line without a terminating
// newline is ignored.
func ReadCSV(source io.Reader) (Table, error) {
	lines := newWholeLines(source)
	csvReader := csv.NewReader(lines)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed reading CSV data: %w", err)
	}
	if lines.Pending() {
		log.Printf("ignoring unterminated final CSV line")
	}
	return parseTable(records)
}

// ReadXLSX reads a chart table from the first sheet of a workbook.
func ReadXLSX(path string) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed opening workbook: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("workbook %q has no sheets: %w", path, chart.ErrEmptyData)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("failed reading sheet %q: %w", sheets[0], err)
	}
	return parseTable(rows)
}

// Load reads a chart table from a .csv or .xlsx file.
func Load(path string) (Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return Table{}, err
		}
		defer f.Close()
		return ReadCSV(f)
	}
}

// LoadChart reads path and builds a chart of the given variant from it.
func LoadChart(path string, variant chart.Variant) (*chart.Data, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	d, err := t.Chart(variant)
	if err != nil {
		return nil, fmt.Errorf("invalid chart in %q: %w", path, err)
	}
	return d, nil
}

// Loaded is the outcome of (re)loading a chart file. Data is nil when Err is
// set.
type Loaded struct {
	Path string
	Data *chart.Data
	Err  error
}

// Datasource loads chart files. Every opened file is a session: a mutation
// that loads the file, emits the result and reloads it whenever it changes on
// disk until a newer session replaces it. Every reload produces a fresh
// *chart.Data, so consumers never share overlay state with the loader.
type Datasource struct {
	pool    *stream.MutationPool[uint64, Loaded]
	variant chart.Variant
	// sessions numbers sessions so that the newest one can be identified.
	sessions atomic.Uint64
	active   atomic.Pointer[stream.Mutation[Loaded]]
}

func NewDatasource(mutator *stream.Mutator, variant chart.Variant) *Datasource {
	return &Datasource{
		pool:    stream.NewMutationPool[uint64, Loaded](mutator),
		variant: variant,
	}
}

// ChartStream emits the results of the most recently opened session. Results
// of replaced sessions are never emitted once a newer session exists.
func (d *Datasource) ChartStream(ctx context.Context) <-chan Loaded {
	return stream.Multiplex(d.pool.Stream(ctx), func(ctx context.Context, current uint64, sessions map[uint64]*stream.Mutation[Loaded]) (<-chan Loaded, uint64) {
		var newest uint64
		for id := range sessions {
			newest = max(newest, id)
		}
		if newest == 0 || newest == current {
			return nil, current
		}
		return sessions[newest].Stream(ctx), newest
	})
}

// Open starts a session that loads path and reloads it on change, cancelling
// the previous session. The returned mutation is nil if the mutator has been
// shut down.
func (d *Datasource) Open(path string) *stream.Mutation[Loaded] {
	return d.startSession(func(ctx context.Context, out chan<- Loaded) {
		d.watchFile(ctx, path, out)
	})
}

// OpenStream loads a chart from a file chosen by the user. Files with a name
// on disk are opened by path so they can be watched; anything else is read
// once.
func (d *Datasource) OpenStream(file io.ReadCloser) *stream.Mutation[Loaded] {
	if f, ok := file.(interface{ Name() string }); ok {
		path := f.Name()
		if err := file.Close(); err != nil {
			log.Printf("failed closing %q: %v", path, err)
		}
		return d.Open(path)
	}
	return d.startSession(func(ctx context.Context, out chan<- Loaded) {
		t, err := ReadCSV(file)
		err = errors.Join(err, file.Close())
		var l Loaded
		if err != nil {
			l.Err = err
		} else {
			l.Data, l.Err = t.Chart(d.variant)
		}
		if emit(ctx, out, l) {
			<-ctx.Done()
		}
	})
}

// LoadFromFile asks the user to choose a chart file and opens it. It returns
// immediately; the result is emitted on ChartStream.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) {
	go func() {
		file, err := expl.ChooseFile("csv", "xlsx")
		if err != nil {
			if !errors.Is(err, explorer.ErrUserDecline) {
				log.Printf("failed choosing file: %v", err)
				d.startSession(func(ctx context.Context, out chan<- Loaded) {
					if emit(ctx, out, Loaded{Err: err}) {
						<-ctx.Done()
					}
				})
			}
			return
		}
		d.OpenStream(file)
	}()
}

func (d *Datasource) startSession(run func(ctx context.Context, out chan<- Loaded)) *stream.Mutation[Loaded] {
	id := d.sessions.Add(1)
	mut, _ := stream.Mutate(d.pool, id, func(ctx context.Context) <-chan Loaded {
		out := make(chan Loaded, 1)
		go func() {
			defer close(out)
			run(ctx, out)
		}()
		return out
	})
	d.active.Swap(mut).Cancel()
	return mut
}

func emit(ctx context.Context, out chan<- Loaded, l Loaded) bool {
	select {
	case out <- l:
		return true
	case <-ctx.Done():
		return false
	}
}

func (d *Datasource) watchFile(ctx context.Context, path string, out chan<- Loaded) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		if emit(ctx, out, Loaded{Path: path, Err: fmt.Errorf("failed creating file watcher: %w", err)}) {
			<-ctx.Done()
		}
		return
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		log.Printf("failed watching %q: %v", path, err)
	}
	if !emit(ctx, out, d.load(path)) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !emit(ctx, out, d.load(path)) {
				return
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher failed: %v", err)
		}
	}
}

func (d *Datasource) load(path string) Loaded {
	data, err := LoadChart(path, d.variant)
	if err != nil {
		log.Printf("failed loading %q: %v", path, err)
	}
	return Loaded{Path: path, Data: data, Err: err}
}
