package solver

import "sync"

// StagePlan carries the budgets for one board size. The defaults are the
// tuned production values; the backend exposes them over /api/config.
type StagePlan struct {
	PrefixTiles         int `json:"prefix_tiles"`
	PDBMaxDepth         int `json:"pdb_max_depth"`
	Stage1NodeLimit     int `json:"stage1_node_limit"`
	Stage1TimeMs        int `json:"stage1_time_ms"`
	EndgameWorkers      int `json:"endgame_workers"`
	EndgameNodeLimit    int `json:"endgame_node_limit"`
	EndgameTimeMs       int `json:"endgame_time_ms"`
	EndgameThresholdCap int `json:"endgame_threshold_cap"`
	FallbackNodeLimit   int `json:"fallback_node_limit"`
	FallbackMaxDepth    int `json:"fallback_max_depth"`
}

type Config struct {
	LogSearchStats bool      `json:"log_search_stats"`
	PDBSnapshotDir string    `json:"pdb_snapshot_dir"`
	Plan4x4        StagePlan `json:"plan_4x4"`
	Plan5x5        StagePlan `json:"plan_5x5"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		LogSearchStats: false,
		PDBSnapshotDir: "",

		Plan4x4: StagePlan{
			PrefixTiles: 6,
			PDBMaxDepth: 14,

			Stage1NodeLimit: 300000,
			Stage1TimeMs:    4000,

			// Endgame runs sequentially on 4×4.
			EndgameWorkers:      1,
			EndgameNodeLimit:    800000,
			EndgameTimeMs:       16000,
			EndgameThresholdCap: 40,

			FallbackNodeLimit: 200000,
			FallbackMaxDepth:  40,
		},

		Plan5x5: StagePlan{
			PrefixTiles: 12,
			PDBMaxDepth: 16,

			Stage1NodeLimit: 250000,
			Stage1TimeMs:    3000,

			EndgameWorkers:      4,
			EndgameNodeLimit:    400000,
			EndgameTimeMs:       9000,
			EndgameThresholdCap: 60,

			FallbackNodeLimit: 400000,
			FallbackMaxDepth:  60,
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func UpdateConfig(config Config) {
	configStore.Update(config)
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

func (c Config) plan(size int) StagePlan {
	if size == 5 {
		return c.Plan5x5
	}
	return c.Plan4x4
}
