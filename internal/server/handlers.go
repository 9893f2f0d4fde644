package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"idz2_bisect/internal/report"
	"idz2_bisect/internal/solver"

	"github.com/google/uuid"
)

// StartRun запускает новый поиск корня
func StartRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "только POST", http.StatusMethodNotAllowed)
		return
	}

	var p RunParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "ошибка JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if p.MaxIter <= 0 {
		p.MaxIter = 50
	}
	if p.Tol <= 0 {
		p.Tol = 1e-6
	}
	if !(p.A < p.B) {
		http.Error(w, "требуется a < b", http.StatusBadRequest)
		return
	}

	f, err := solver.NewEvalFunc(p.Func)
	if err != nil {
		http.Error(w, "ошибка в выражении функции: "+err.Error(), http.StatusBadRequest)
		return
	}

	// проверяем смену знака сразу, чтобы клиент получил 400, а не ошибку в стриме
	fa, errA := f.Eval(p.A)
	fb, errB := f.Eval(p.B)
	if errA != nil || errB != nil {
		if errA == nil {
			errA = errB
		}
		http.Error(w, "функция не вычислима на концах отрезка: "+errA.Error(), http.StatusBadRequest)
		return
	}
	if fa*fb >= 0 {
		be := &solver.BracketError{A: p.A, B: p.B, FA: fa, FB: fb}
		http.Error(w, be.Error(), http.StatusBadRequest)
		return
	}

	// предварительно считаем значения функции для графика кривой
	xs, ys := report.SampleCurve(f, p.A, p.B, 400)

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	rs := &RunState{
		ID:        id,
		Params:    p,
		CreatedAt: time.Now(),
		Cancel:    cancel,
	}
	saveRun(rs)

	// асинхронный запуск метода
	go func() {
		defer hub.Close(id)

		startMsg, _ := json.Marshal(map[string]any{
			"type": "start",
			"id":   id,
		})
		hub.Publish(id, string(startMsg))

		onIter := func(it solver.Iter) error {
			select {
			case <-ctx.Done():
				return solver.ErrStopped
			default:
			}

			rs.appendIter(it)

			payload := map[string]any{
				"type": "iter",
				"iter": it,
			}
			msg, _ := json.Marshal(payload)
			hub.Publish(id, string(msg))
			return nil
		}

		res, err := solver.Bisect(
			f,
			p.A, p.B,
			p.Tol,
			p.MaxIter,
			onIter,
		)

		if err != nil {
			if errors.Is(err, solver.ErrStopped) || errors.Is(err, context.Canceled) {
				stopMsg, _ := json.Marshal(map[string]any{
					"type": "stopped",
				})
				hub.Publish(id, string(stopMsg))
				return
			}

			rs.finish("", "ошибка при вычислении: "+err.Error())
			errMsg, _ := json.Marshal(map[string]any{
				"type": "error",
				"err":  "ошибка при вычислении: " + err.Error(),
			})
			hub.Publish(id, string(errMsg))
			return
		}

		rs.finish(res.Reason, "")

		froot, _ := f.Eval(res.Root)
		doneMsg, _ := json.Marshal(map[string]any{
			"type":   "done",
			"x":      res.Root,
			"fx":     froot,
			"iters":  len(res.Iters),
			"reason": res.Reason,
		})
		hub.Publish(id, string(doneMsg))
	}()

	resp := map[string]any{
		"id": id,
		"xs": xs,
		"ys": ys,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// StopRun — прерывание поиска
func StopRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "только POST", http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}

	rs := getRun(id)
	if rs == nil {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return
	}

	if rs.Cancel != nil {
		rs.Cancel()
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportCSV — экспорт таблицы итераций в CSV
func ExportCSV(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}

	rs := getRun(id)
	if rs == nil {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=iterations_"+id+".csv")

	cw := csv.NewWriter(w)
	defer cw.Flush()

	_ = cw.Write([]string{"iteration", "a", "b", "midpoint", "f(midpoint)", "error"})

	for _, it := range rs.snapshotIters() {
		_ = cw.Write([]string{
			strconv.Itoa(it.K),
			fmtFloat(it.A),
			fmtFloat(it.B),
			fmtFloat(it.XMid),
			fmtFloat(it.FMid),
			fmtFloat(it.Err),
		})
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 16, 64)
}

// Stream — SSE-стрим итераций
func Stream(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, cancel := hub.Subscribe(id)
	defer cancel()

	ctx := r.Context()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, open := <-ch:
			if !open {
				return
			}
			fmt.Fprintf(w, "event: msg\n")
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
