// Package profile computes the summary returned after a dataset upload:
// shape, duplicate rows and per-column counts.
package profile

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"go-column-rules/internal/columns"
	"go-column-rules/internal/model"
	"go-column-rules/pkg/logger"
	"go-column-rules/pkg/utils"
)

// rowSep joins the cells of a row into its duplicate-detection key.
const rowSep = "\x1f"

// columnStats accumulates one column's figures.
type columnStats struct {
	nonNull int
	missing int
	values  map[string]struct{}
	min     float64
	max     float64
	hasNum  bool
}

func (s *columnStats) observe(cell string, kind model.ColumnKind) {
	if utils.IsBlank(cell) {
		s.missing++
		return
	}
	s.nonNull++
	s.values[cell] = struct{}{}

	if kind != model.KindNumeric {
		return
	}
	v, ok := utils.ParseFloat(cell)
	if !ok {
		return
	}
	if !s.hasNum || v < s.min {
		s.min = v
	}
	if !s.hasNum || v > s.max {
		s.max = v
	}
	s.hasNum = true
}

func (s *columnStats) merge(o *columnStats) {
	s.nonNull += o.nonNull
	s.missing += o.missing
	for v := range o.values {
		s.values[v] = struct{}{}
	}
	if !o.hasNum {
		return
	}
	if !s.hasNum || o.min < s.min {
		s.min = o.min
	}
	if !s.hasNum || o.max > s.max {
		s.max = o.max
	}
	s.hasNum = true
}

// worker profiles the rows it receives. Workers never share state; their
// partial results are merged once all rows are consumed.
type worker struct {
	ID      int
	kinds   []model.ColumnKind
	stats   []*columnStats
	rowKeys map[string]int
	records int
}

func newWorker(id int, kinds []model.ColumnKind) *worker {
	w := &worker{
		ID:      id,
		kinds:   kinds,
		stats:   make([]*columnStats, len(kinds)),
		rowKeys: make(map[string]int),
	}
	for i := range w.stats {
		w.stats[i] = &columnStats{values: make(map[string]struct{})}
	}
	return w
}

func (w *worker) processRow(row []string) {
	for i, cell := range row {
		if i < len(w.stats) {
			w.stats[i].observe(cell, w.kinds[i])
		}
	}
	w.rowKeys[strings.Join(row, rowSep)]++
	w.records++
}

// Build profiles t using workerCount goroutines. A workerCount below one
// uses one worker per CPU.
func Build(ctx context.Context, t *model.Table, workerCount int, log logger.LoggerI) (*model.DatasetProfile, error) {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	if log == nil {
		log = logger.NewNop()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kinds := make([]model.ColumnKind, len(t.Headers))
	for i := range t.Headers {
		kinds[i] = columns.KindOf(t.Rows, i)
	}

	workers := make([]*worker, workerCount)
	for i := range workers {
		workers[i] = newWorker(i+1, kinds)
	}

	in := make(chan []string, 100)
	var wg sync.WaitGroup
	wg.Add(workerCount)
	for _, w := range workers {
		go func(w *worker) {
			defer wg.Done()
			for row := range in {
				w.processRow(row)
			}
		}(w)
	}

	var cancelled error
feed:
	for _, row := range t.Rows {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case in <- row:
		}
	}
	close(in)
	wg.Wait()
	if cancelled != nil {
		return nil, cancelled
	}

	p := merge(t.Headers, kinds, workers)
	log.Debug("dataset profiled",
		logger.Int("rows", p.TotalRows),
		logger.Int("columns", p.TotalColumns),
		logger.Int("duplicates", p.DuplicateRows),
		logger.Int("workers", workerCount),
	)
	return p, nil
}

func merge(headers []string, kinds []model.ColumnKind, workers []*worker) *model.DatasetProfile {
	total := make([]*columnStats, len(headers))
	for i := range total {
		total[i] = &columnStats{values: make(map[string]struct{})}
	}
	rowKeys := make(map[string]int)
	rows := 0

	for _, w := range workers {
		for i, s := range w.stats {
			total[i].merge(s)
		}
		for k, n := range w.rowKeys {
			rowKeys[k] += n
		}
		rows += w.records
	}

	p := &model.DatasetProfile{
		TotalRows:     rows,
		TotalColumns:  len(headers),
		ColumnNames:   append([]string(nil), headers...),
		MissingByName: make(map[string]int, len(headers)),
		Columns:       make([]model.ColumnProfile, len(headers)),
	}
	for _, n := range rowKeys {
		p.DuplicateRows += n - 1
	}
	for i, name := range headers {
		s := total[i]
		col := model.ColumnProfile{
			Name:    name,
			Kind:    kinds[i],
			NonNull: s.nonNull,
			Missing: s.missing,
			Unique:  len(s.values),
		}
		if s.hasNum {
			lo, hi := s.min, s.max
			col.Min, col.Max = &lo, &hi
		}
		p.Columns[i] = col
		p.MissingByName[name] = s.missing
	}
	return p
}
