package fcache

import "time"

// writeConfig holds per-write settings resolved against cache defaults.
type writeConfig struct {
	ttl        time.Duration
	ttlSet     bool
	refresh    bool
	refreshSet bool
	appendMode bool
}

// WriteOption configures a single Set, SetReader, Move, or SetGroup
// member.
type WriteOption func(*writeConfig)

// WriteWithTTL sets this write's time-to-live, overriding the cache
// default. Zero disables expiration for the entry.
func WriteWithTTL(d time.Duration) WriteOption {
	return func(cfg *writeConfig) {
		cfg.ttl = d
		cfg.ttlSet = true
	}
}

// WriteWithRefreshOnGet sets whether reads rearm this entry's
// expiration timer, overriding the cache default.
func WriteWithRefreshOnGet(refresh bool) WriteOption {
	return func(cfg *writeConfig) {
		cfg.refresh = refresh
		cfg.refreshSet = true
	}
}

// WriteWithAppend appends to the entry's existing artifact instead of
// replacing it. Ignored by Move.
func WriteWithAppend() WriteOption {
	return func(cfg *writeConfig) {
		cfg.appendMode = true
	}
}

func (c *Cache) writeConfig(opts []WriteOption) writeConfig {
	var cfg writeConfig
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if !cfg.ttlSet {
		cfg.ttl = c.defaultTTL
	}
	if !cfg.refreshSet {
		cfg.refresh = c.refreshOnGet
	}
	return cfg
}
