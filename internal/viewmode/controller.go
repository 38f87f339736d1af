package viewmode

import (
	"sync"

	"soundsphere/internal/domain"
	"soundsphere/internal/logger"
	"soundsphere/internal/metrics"
	"soundsphere/internal/ports"
)

// Controller is the two-state view-mode machine. Every transition tears down
// and rebuilds the camera rig through the RigRebuilder. At most one rebuild
// runs at a time.
type Controller struct {
	rebuilder ports.RigRebuilder
	log       logger.Logger
	metrics   *metrics.Collectors

	mu          sync.Mutex
	idle        *sync.Cond
	mode        domain.ViewMode
	rebuilding  bool
	queued      bool
	transitions uint64
}

func NewController(rebuilder ports.RigRebuilder, log logger.Logger, m *metrics.Collectors) *Controller {
	c := &Controller{
		rebuilder: rebuilder,
		log:       logger.OrNop(log),
		metrics:   m,
		mode:      domain.ViewModeOrbit,
	}
	c.idle = sync.NewCond(&c.mu)
	return c
}

// Mode returns the active view mode.
func (c *Controller) Mode() domain.ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Rig returns the camera rig for the active mode.
func (c *Controller) Rig() CameraRig {
	return RigFor(c.Mode())
}

// Transitions returns how many rig rebuilds have been issued.
func (c *Controller) Transitions() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transitions
}

// Toggle flips between orbit and immersive and rebuilds the rig, returning
// the mode now in effect.
//
// A toggle that arrives while a rebuild is running does not flip the mode.
// It is queued and applied by the next Tick. Any number of toggles during the
// same rebuild collapse into that single queued flip, so a double click
// mid-rebuild ends one mode away from where it started, not two.
func (c *Controller) Toggle() domain.ViewMode {
	c.mu.Lock()
	if c.rebuilding {
		c.queued = true
		mode := c.mode
		c.mu.Unlock()
		c.log.Debug("view mode toggle queued", map[string]interface{}{"mode": string(mode)})
		return mode
	}
	c.mode = c.mode.Other()
	mode, generation := c.beginRebuildLocked()
	c.mu.Unlock()

	c.metrics.CountToggle(string(mode))
	c.rebuild(mode, generation)
	return mode
}

// Tick runs once per render frame and applies a queued toggle.
func (c *Controller) Tick() {
	c.mu.Lock()
	if !c.queued || c.rebuilding {
		c.mu.Unlock()
		return
	}
	c.queued = false
	c.mu.Unlock()

	c.Toggle()
}

// Reset returns to orbit, drops any queued toggle and rebuilds the rig. If a
// rebuild is in flight, Reset waits for it to finish first so that the orbit
// rig is always the last one built. It must not be called from inside
// RebuildRig.
func (c *Controller) Reset() {
	c.mu.Lock()
	for c.rebuilding {
		c.idle.Wait()
	}
	c.queued = false
	c.mode = domain.ViewModeOrbit
	mode, generation := c.beginRebuildLocked()
	c.mu.Unlock()

	c.rebuild(mode, generation)
}

func (c *Controller) beginRebuildLocked() (domain.ViewMode, uint64) {
	c.rebuilding = true
	c.transitions++
	return c.mode, c.transitions
}

func (c *Controller) rebuild(mode domain.ViewMode, generation uint64) {
	if c.rebuilder != nil {
		c.rebuilder.RebuildRig(mode)
	}

	c.mu.Lock()
	c.rebuilding = false
	c.idle.Broadcast()
	c.mu.Unlock()

	c.log.Debug("camera rig rebuilt", map[string]interface{}{
		"mode":       string(mode),
		"generation": generation,
	})
}
