package main

import (
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rafsan1711/sliding-puzzle-with-Solver-IDA/solver"
)

const (
	jobQueued  = "queued"
	jobSolving = "solving"
	jobDone    = "done"
	jobFailed  = "failed"
)

type solveJob struct {
	ID      string
	Size    int
	Board   []byte
	Created time.Time
}

type jobStatus struct {
	ID         string `json:"id"`
	Size       int    `json:"size"`
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Nodes      int    `json:"nodes"`
	FailReason string `json:"fail_reason,omitempty"`
	CreatedMs  int64  `json:"created_at_ms"`
	FinishedMs int64  `json:"finished_at_ms,omitempty"`
}

type queueSnapshot struct {
	Jobs         []jobStatus `json:"jobs"`
	TotalInQueue int         `json:"total_in_queue"`
}

// solveQueue is the asynchronous solve backlog: jobs are deduplicated by
// board hash, drained by background workers, and narrated over the hub.
type solveQueue struct {
	mu      sync.Mutex
	queue   []solveJob
	present map[string]struct{}
	status  map[string]jobStatus
	order   []string
	hub     *Hub
	stop    atomic.Bool
}

func newSolveQueue(hub *Hub) *solveQueue {
	return &solveQueue{
		present: make(map[string]struct{}),
		status:  make(map[string]jobStatus),
		hub:     hub,
	}
}

func jobID(board []byte) string {
	h := fnv.New64a()
	h.Write(board)
	return fmt.Sprintf("0x%x", h.Sum64())
}

// Enqueue adds a board to the backlog. A board already queued or solved
// is reported as a hit, not queued twice.
func (q *solveQueue) Enqueue(board []byte, size int) (string, bool) {
	id := jobID(board)
	q.mu.Lock()
	if _, ok := q.present[id]; ok {
		q.mu.Unlock()
		log.Info().Str("job", id).Msg("queue hit, board already tracked")
		q.hub.Publish(solveEvent{Event: "queue_hit", JobID: id, UpdatedAt: time.Now().UnixMilli()})
		return id, false
	}
	job := solveJob{ID: id, Size: size, Board: append([]byte(nil), board...), Created: time.Now()}
	q.queue = append(q.queue, job)
	q.present[id] = struct{}{}
	q.status[id] = jobStatus{ID: id, Size: size, Status: jobQueued, CreatedMs: job.Created.UnixMilli()}
	q.order = append(q.order, id)
	depth := len(q.queue)
	q.mu.Unlock()
	log.Info().Str("job", id).Int("size", size).Int("queued", depth).Msg("job queued")
	q.hub.Publish(solveEvent{Event: "job_queued", JobID: id, Size: size, UpdatedAt: time.Now().UnixMilli()})
	return id, true
}

func (q *solveQueue) pickJob() (solveJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.queue) == 0 {
		return solveJob{}, false
	}
	job := q.queue[0]
	q.queue = q.queue[1:]
	status := q.status[job.ID]
	status.Status = jobSolving
	q.status[job.ID] = status
	return job, true
}

func (q *solveQueue) finishJob(id string, res solver.Result, err error) {
	q.mu.Lock()
	status := q.status[id]
	status.Nodes = res.Nodes
	status.FinishedMs = time.Now().UnixMilli()
	if err != nil {
		status.Status = jobFailed
		status.FailReason = res.FailReason
	} else {
		status.Status = jobDone
		status.Count = len(res.Moves)
	}
	q.status[id] = status
	q.mu.Unlock()

	if err != nil {
		q.hub.Publish(solveEvent{Event: "job_failed", JobID: id, Nodes: res.Nodes, FailReason: status.FailReason, UpdatedAt: time.Now().UnixMilli()})
		return
	}
	q.hub.Publish(solveEvent{Event: "job_done", JobID: id, Count: status.Count, Nodes: res.Nodes, UpdatedAt: time.Now().UnixMilli()})
}

func (q *solveQueue) Snapshot() queueSnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	jobs := make([]jobStatus, 0, len(q.order))
	for _, id := range q.order {
		jobs = append(jobs, q.status[id])
	}
	return queueSnapshot{Jobs: jobs, TotalInQueue: len(q.queue)}
}

func (q *solveQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}

func (q *solveQueue) RequestStop() {
	q.stop.Store(true)
}

func (q *solveQueue) startWorkers(count int) {
	if count <= 0 {
		count = 1
	}
	log.Info().Int("workers", count).Msg("starting queue workers")
	for i := 0; i < count; i++ {
		go q.worker()
	}
}

func (q *solveQueue) worker() {
	for {
		if q.stop.Load() {
			return
		}
		job, ok := q.pickJob()
		if !ok {
			time.Sleep(150 * time.Millisecond)
			continue
		}
		q.hub.Publish(solveEvent{Event: "job_started", JobID: job.ID, Size: job.Size, UpdatedAt: time.Now().UnixMilli()})
		began := time.Now()
		res, err := solver.Solve(job.Board, job.Size, solver.SolveOptions{OnStage: func(ev solver.StageEvent) {
			q.hub.Publish(solveEvent{
				Event:     ev.Kind,
				JobID:     job.ID,
				Size:      ev.Size,
				Stage:     ev.Stage,
				Tile:      ev.Tile,
				Moves:     ev.Moves,
				Nodes:     ev.Nodes,
				UpdatedAt: time.Now().UnixMilli(),
			})
		}})
		q.finishJob(job.ID, res, err)
		log.Info().
			Str("job", job.ID).
			Dur("elapsed", time.Since(began)).
			Int("remaining", q.Len()).
			Err(err).
			Msg("job finished")
	}
}
