package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Rafsan1711/sliding-puzzle-with-Solver-IDA/solver"
)

type solveRequest struct {
	Board []int `json:"board"`
	Size  int   `json:"size"`
}

type solveResponse struct {
	Count     int     `json:"count"`
	Moves     []int   `json:"moves"`
	Nodes     int     `json:"nodes"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

type shuffleRequest struct {
	Size  int `json:"size"`
	Times int `json:"times"`
}

type heuristicRequest struct {
	Board []int `json:"board"`
	Size  int   `json:"size"`
	Stage int   `json:"stage"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	if os.Getenv("SOLVER_DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	addr := os.Getenv("SOLVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if dir := os.Getenv("SOLVER_PDB_DIR"); dir != "" {
		cfg := solver.GetConfig()
		cfg.PDBSnapshotDir = dir
		solver.UpdateConfig(cfg)
	}

	hub := NewHub()
	queue := newSolveQueue(hub)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())
	queue.startWorkers(1)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Post("/api/solve", func(w http.ResponseWriter, r *http.Request) {
		var payload solveRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		state, err := boardFromInts(payload.Board, payload.Size)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		id := "sync-" + jobID(state)
		res, err := solver.Solve(state, payload.Size, solver.SolveOptions{OnStage: func(ev solver.StageEvent) {
			hub.Publish(solveEvent{
				Event:     ev.Kind,
				JobID:     id,
				Size:      ev.Size,
				Stage:     ev.Stage,
				Tile:      ev.Tile,
				Moves:     ev.Moves,
				Nodes:     ev.Nodes,
				UpdatedAt: time.Now().UnixMilli(),
			})
		}})
		if err != nil {
			status := http.StatusUnprocessableEntity
			if !solver.IsSearchFailure(err) {
				status = http.StatusBadRequest
			}
			writeJSON(w, status, map[string]string{"error": err.Error(), "fail_reason": res.FailReason})
			return
		}
		writeJSON(w, http.StatusOK, solveResponse{
			Count:     len(res.Moves),
			Moves:     movesToInts(res.Moves),
			Nodes:     res.Nodes,
			ElapsedMs: float64(res.Elapsed.Microseconds()) / 1000.0,
		})
	})

	r.Post("/api/shuffle", func(w http.ResponseWriter, r *http.Request) {
		var payload shuffleRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Size != 4 && payload.Size != 5 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "size must be 4 or 5"})
			return
		}
		state := solvedState(payload.Size)
		solver.ShuffleState(state, payload.Size, payload.Times)
		writeJSON(w, http.StatusOK, map[string]any{"board": bytesToInts(state), "size": payload.Size})
	})

	r.Post("/api/heuristic", func(w http.ResponseWriter, r *http.Request) {
		var payload heuristicRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		state, err := boardFromInts(payload.Board, payload.Size)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{
			"manhattan": solver.GetManhattan(state, payload.Size),
			"pdb":       solver.GetPDBHeuristic(state, payload.Size, payload.Stage),
		})
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, solver.GetConfig())
	})

	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		var config solver.Config
		if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		solver.UpdateConfig(config)
		writeJSON(w, http.StatusOK, solver.GetConfig())
	})

	r.Post("/api/queue", func(w http.ResponseWriter, r *http.Request) {
		var payload solveRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		state, err := boardFromInts(payload.Board, payload.Size)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		id, queued := queue.Enqueue(state, payload.Size)
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "queued": queued})
	})

	r.Get("/api/queue", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, queue.Snapshot())
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, queue, w, r)
	})

	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		log.Info().Str("addr", addr).Msg("solver backend listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	queue.RequestStop()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	solver.PersistPatternDBs()
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func solvedState(size int) []byte {
	state := make([]byte, size*size)
	for i := 0; i < size*size-1; i++ {
		state[i] = byte(i + 1)
	}
	return state
}

func boardFromInts(values []int, size int) ([]byte, error) {
	if size != 4 && size != 5 {
		return nil, fmt.Errorf("size must be 4 or 5, got %d", size)
	}
	if len(values) != size*size {
		return nil, fmt.Errorf("board must hold %d cells, got %d", size*size, len(values))
	}
	state := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v >= size*size {
			return nil, fmt.Errorf("cell %d holds %d, outside 0..%d", i, v, size*size-1)
		}
		state[i] = byte(v)
	}
	return state, nil
}

func bytesToInts(state []byte) []int {
	out := make([]int, len(state))
	for i, v := range state {
		out[i] = int(v)
	}
	return out
}

func movesToInts(moves []uint8) []int {
	out := make([]int, len(moves))
	for i, v := range moves {
		out[i] = int(v)
	}
	return out
}
