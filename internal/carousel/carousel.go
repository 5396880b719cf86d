// Package carousel drives the rotating "platos del día" showcase: a circular
// index over the daily-special products with an autoplay timer that is
// restarted on every manual interaction.
package carousel

import (
	"sync"
	"time"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
)

// DefaultInterval is the autoplay cadence measured since the last
// interaction, not a fixed wall-clock beat.
const DefaultInterval = 3500 * time.Millisecond

// Window is how many items are rendered on each side of the center card.
// Items outside the window stay in the logical rotation but are not drawn.
const Window = 2

// Slot is one rendered card: Position 0 is the center, negative positions
// sit left of it. Scale and blur fall off with distance from the center.
type Slot struct {
	Product  domain.Product
	Position int
}

// Controller owns the active index and the single autoplay timer. The item
// list is supplied by the catalog and stays order-stable for the session.
type Controller struct {
	mu       sync.Mutex
	items    []domain.Product
	active   int
	interval time.Duration
	timer    *time.Timer
	playing  bool
	stopped  bool
}

func New(items []domain.Product, interval time.Duration) *Controller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Controller{items: items, interval: interval}
}

// Start arms autoplay. An empty carousel renders nothing and owns no timer.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 || c.stopped || c.playing {
		return
	}
	c.playing = true
	c.armLocked()
}

// Stop cancels the timer for good. It must be called on teardown; a timer
// left running after the controller is gone is a leak.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	c.playing = false
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// armLocked cancels any pending timer before scheduling the next tick, so
// there is never more than one timer advancing the index.
func (c *Controller) armLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.interval, c.tick)
}

func (c *Controller) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || !c.playing || len(c.items) == 0 {
		return
	}
	c.active = (c.active + 1) % len(c.items)
	c.armLocked()
}

// Next advances one slot manually and restarts the autoplay countdown.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return
	}
	c.active = (c.active + 1) % len(c.items)
	c.restartLocked()
}

// Prev moves one slot back and restarts the autoplay countdown.
func (c *Controller) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return
	}
	c.active = (c.active - 1 + len(c.items)) % len(c.items)
	c.restartLocked()
}

func (c *Controller) restartLocked() {
	if c.playing && !c.stopped {
		c.armLocked()
	}
}

// Click disambiguates the two card gestures: clicking the center card
// selects it (returns the product), clicking a side card only brings it to
// the center and resets the timer so the rotation does not jump right away.
func (c *Controller) Click(index int) (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 || index < 0 || index >= len(c.items) {
		return domain.Product{}, false
	}

	if index == c.active {
		return c.items[index], true
	}

	c.active = index
	c.restartLocked()
	return domain.Product{}, false
}

func (c *Controller) ActiveIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.active
}

func (c *Controller) Active() (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return domain.Product{}, false
	}
	return c.items[c.active], true
}

// Offset is the shortest signed circular distance from the active index to
// item i, folded into [-half, half] with half = len/2.
func (c *Controller) Offset(i int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.offsetLocked(i)
}

func (c *Controller) offsetLocked(i int) int {
	length := len(c.items)
	if length == 0 {
		return 0
	}

	position := i - c.active
	half := length / 2
	if position < -half {
		position += length
	}
	if position > half {
		position -= length
	}
	return position
}

// Slots returns the cards inside the visual window ordered left to right.
func (c *Controller) Slots() []Slot {
	c.mu.Lock()
	defer c.mu.Unlock()

	slots := make([]Slot, 0, 2*Window+1)
	for pos := -Window; pos <= Window; pos++ {
		for i := range c.items {
			if c.offsetLocked(i) == pos {
				slots = append(slots, Slot{Product: c.items[i], Position: pos})
				break
			}
		}
	}
	return slots
}
