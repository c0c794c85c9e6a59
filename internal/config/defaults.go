package config

// Sweep range resolution (highest priority first):
//   1. CLI flags (--min-block, --max-block)
//   2. Environment variables (MATBENCH_MIN_BLOCK, MATBENCH_MAX_BLOCK)
//   3. The full range 1..n-1 (this file)

// ApplySweepDefaults fills the block range left at its zero value. Only
// MaxBlock has an order-dependent default; an order of 1 resolves to the
// empty range 1..0.
func ApplySweepDefaults(cfg AppConfig) AppConfig {
	if cfg.MinBlock == 0 {
		cfg.MinBlock = 1
	}
	if cfg.MaxBlock == 0 {
		cfg.MaxBlock = cfg.N - 1
	}
	if cfg.Repeat == 0 {
		cfg.Repeat = DefaultRepeat
	}
	return cfg
}

// SweepSizes returns how many block sizes the resolved range covers.
func SweepSizes(cfg AppConfig) int {
	cfg = ApplySweepDefaults(cfg)
	return max(0, cfg.MaxBlock-cfg.MinBlock+1)
}
