package rules

import (
	"fmt"
	"time"
)

// RuleConfig is the common shape of admission rule tunables.
type RuleConfig interface {
	Validate() error
	GetThreshold() interface{}
}

// VelocityConfig limits how many events one actor may generate against one
// site inside the window.
type VelocityConfig struct {
	MaxEvents int           `json:"max_events"`
	Window    time.Duration `json:"window"`
}

func (c *VelocityConfig) Validate() error {
	if c.MaxEvents <= 0 {
		return fmt.Errorf("max_events must be positive")
	}
	if c.Window <= 0 {
		return fmt.Errorf("window must be positive")
	}
	return nil
}

func (c *VelocityConfig) GetThreshold() interface{} {
	return c.MaxEvents
}

// SockPuppetConfig flags actors whose event volume comes from too few
// distinct originating addresses. The check only applies once the actor has
// at least ActivityFloor events in the window.
type SockPuppetConfig struct {
	MinDistinctAddresses int           `json:"min_distinct_addresses"`
	ActivityFloor        int           `json:"activity_floor"`
	Window               time.Duration `json:"window"`
}

func (c *SockPuppetConfig) Validate() error {
	if c.MinDistinctAddresses <= 0 {
		return fmt.Errorf("min_distinct_addresses must be positive")
	}
	if c.ActivityFloor <= 0 {
		return fmt.Errorf("activity_floor must be positive")
	}
	if c.Window <= 0 {
		return fmt.Errorf("window must be positive")
	}
	return nil
}

func (c *SockPuppetConfig) GetThreshold() interface{} {
	return c.MinDistinctAddresses
}

// DedupConfig sets the time bucket inside which one (site, actor, platform)
// share key is admitted at most once.
type DedupConfig struct {
	Bucket time.Duration `json:"bucket"`
}

func (c *DedupConfig) Validate() error {
	if c.Bucket <= 0 {
		return fmt.Errorf("bucket must be positive")
	}
	return nil
}

func (c *DedupConfig) GetThreshold() interface{} {
	return c.Bucket
}
