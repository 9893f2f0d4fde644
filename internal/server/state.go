package server

import (
	"context"
	"sync"
	"time"

	"idz2_bisect/internal/solver"
	"idz2_bisect/internal/sse"
)

// параметры запуска метода
type RunParams struct {
	Func    string  `json:"func"`
	A       float64 `json:"a"`
	B       float64 `json:"b"`
	Tol     float64 `json:"tol"`
	MaxIter int     `json:"maxIter"`
}

// состояние одного запуска
type RunState struct {
	ID        string
	Params    RunParams
	CreatedAt time.Time

	LastIter solver.Iter
	Iters    []solver.Iter
	Reason   solver.StopReason

	Err    string
	Done   bool
	Cancel context.CancelFunc
}

var (
	runsMu sync.Mutex
	runs   = map[string]*RunState{}

	hub = sse.NewHub()
)

func saveRun(rs *RunState) {
	runsMu.Lock()
	defer runsMu.Unlock()
	runs[rs.ID] = rs
}

func getRun(id string) *RunState {
	runsMu.Lock()
	defer runsMu.Unlock()
	return runs[id]
}

// appendIter добавляет запись под общим замком: историю читает ExportCSV
func (rs *RunState) appendIter(it solver.Iter) {
	runsMu.Lock()
	defer runsMu.Unlock()
	rs.LastIter = it
	rs.Iters = append(rs.Iters, it)
}

// snapshotIters возвращает копию истории для экспорта
func (rs *RunState) snapshotIters() []solver.Iter {
	runsMu.Lock()
	defer runsMu.Unlock()
	return append([]solver.Iter(nil), rs.Iters...)
}

func (rs *RunState) finish(reason solver.StopReason, errMsg string) {
	runsMu.Lock()
	defer runsMu.Unlock()
	rs.Done = errMsg == ""
	rs.Reason = reason
	rs.Err = errMsg
}
