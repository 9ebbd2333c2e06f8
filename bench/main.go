// Command bench drives a running solver backend over HTTP: it shuffles
// boards, submits them for solving, and aggregates the results.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"time"
)

type bench struct {
	client  *http.Client
	baseURL string
	logger  *log.Logger

	size    int
	shuffle int
	count   int
}

type shufflePayload struct {
	Board []int `json:"board"`
	Size  int   `json:"size"`
}

type solvePayload struct {
	Count     int     `json:"count"`
	Nodes     int     `json:"nodes"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

func main() {
	addr := flag.String("addr", "http://localhost:8080", "Backend base URL")
	size := flag.Int("size", 4, "Board size (4 or 5)")
	shuffle := flag.Int("shuffle", 30, "Shuffle depth per board")
	count := flag.Int("count", 20, "Number of boards to solve")
	timeout := flag.Duration("timeout", 60*time.Second, "Per-request timeout")
	flag.Parse()

	b := &bench{
		client:  &http.Client{Timeout: *timeout},
		baseURL: *addr,
		logger:  log.New(os.Stderr, "[bench] ", log.LstdFlags),
		size:    *size,
		shuffle: *shuffle,
		count:   *count,
	}
	if err := b.run(); err != nil {
		b.logger.Fatalf("bench failed: %v", err)
	}
}

func (b *bench) run() error {
	var (
		moveCounts []int
		elapsed    []float64
		failures   int
		totalNodes int
	)
	for i := 0; i < b.count; i++ {
		board, err := b.shuffleBoard()
		if err != nil {
			return fmt.Errorf("shuffling board %d: %w", i, err)
		}
		res, err := b.solveBoard(board)
		if err != nil {
			failures++
			b.logger.Printf("board %d/%d failed: %v", i+1, b.count, err)
			continue
		}
		moveCounts = append(moveCounts, res.Count)
		elapsed = append(elapsed, res.ElapsedMs)
		totalNodes += res.Nodes
		b.logger.Printf("board %d/%d solved in %d moves (%.1fms, %d nodes)",
			i+1, b.count, res.Count, res.ElapsedMs, res.Nodes)
	}
	if len(moveCounts) == 0 {
		return fmt.Errorf("no board solved (%d failures)", failures)
	}

	sort.Ints(moveCounts)
	sort.Float64s(elapsed)
	sumMoves := 0
	for _, c := range moveCounts {
		sumMoves += c
	}
	b.logger.Printf("solved %d/%d boards (size=%d shuffle=%d)", len(moveCounts), b.count, b.size, b.shuffle)
	b.logger.Printf("moves: avg=%.1f median=%d max=%d", float64(sumMoves)/float64(len(moveCounts)),
		moveCounts[len(moveCounts)/2], moveCounts[len(moveCounts)-1])
	b.logger.Printf("elapsed_ms: median=%.1f max=%.1f nodes_total=%d",
		elapsed[len(elapsed)/2], elapsed[len(elapsed)-1], totalNodes)
	return nil
}

func (b *bench) shuffleBoard() ([]int, error) {
	var result shufflePayload
	err := b.postJSON("/api/shuffle", map[string]int{"size": b.size, "times": b.shuffle}, &result)
	if err != nil {
		return nil, err
	}
	return result.Board, nil
}

func (b *bench) solveBoard(board []int) (solvePayload, error) {
	var result solvePayload
	err := b.postJSON("/api/solve", map[string]any{"board": board, "size": b.size}, &result)
	return result, err
}

func (b *bench) postJSON(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := b.client.Post(b.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error      string `json:"error"`
			FailReason string `json:"fail_reason"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s returned %d: %s (%s)", path, resp.StatusCode, apiErr.Error, apiErr.FailReason)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
