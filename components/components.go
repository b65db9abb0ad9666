package components

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Discord's limits on message components.
const (
	MaxRows              = 5
	RowWidth             = 5
	MaxLabelLength       = 80
	MaxCustomIDLength    = 100
	MaxPlaceholderLength = 150
	MaxMenuOptions       = 25
	MaxOptionLength      = 100
)

// Component is a single button or select menu that can be laid out in a Components container.
type Component interface {
	// ID returns the identifier the component is known by.
	ID() string

	// Validate tells whether the component satisfies Discord's constraints.
	Validate() error

	ensureID()
	width() int
	build() discordgo.MessageComponent
}

// actionable is a Component that runs a handler when a user interacts with it.
type actionable interface {
	Component
	call(ctx context.Context, inv *invocation) error
}

// Components is a set of up to five rows of components attached to a single message.
type Components struct {
	extension Extension

	// Timeout is how long the components stay registered after Registry.Register. Zero means forever.
	Timeout time.Duration

	// OnTimeout is called once the components are unregistered because Timeout elapsed.
	OnTimeout func(components *Components)

	mu       sync.RWMutex
	rows     [MaxRows][]Component
	registry *Registry
	timer    *time.Timer
}

// New creates an empty Components container owned by the given extension.
func New(extension Extension) *Components {
	return &Components{
		extension: extension,
	}
}

// Extension returns the owner of the components.
func (c *Components) Extension() Extension {
	return c.extension
}

// Add validates the component and lays it out.
// With no row given, the component goes to the first row that has room for it.
// A missing custom ID is generated, so Add may modify the component.
func (c *Components) Add(component Component, row ...int) error {
	if err := component.Validate(); err != nil {
		return err
	}

	component.ensureID()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.find(component.ID()) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateID, component.ID())
	}

	index, err := c.place(component, row)
	if err != nil {
		return err
	}

	if c.registry != nil {
		if err := c.registry.add(c, component); err != nil {
			return err
		}
	}

	c.rows[index] = append(c.rows[index], component)
	return nil
}

func (c *Components) place(component Component, row []int) (int, error) {
	if len(row) > 0 {
		index := row[0]
		if index < 0 || index >= MaxRows {
			return 0, ErrInvalidRow
		}
		if c.usedWidth(index)+component.width() > RowWidth {
			return 0, ErrRowFull
		}
		return index, nil
	}

	for index := range c.rows {
		if c.usedWidth(index)+component.width() <= RowWidth {
			return index, nil
		}
	}
	return 0, ErrNoRoom
}

func (c *Components) usedWidth(row int) int {
	used := 0
	for _, comp := range c.rows[row] {
		used += comp.width()
	}
	return used
}

func (c *Components) find(id string) Component {
	for _, row := range c.rows {
		for _, comp := range row {
			if comp.ID() == id {
				return comp
			}
		}
	}
	return nil
}

// Remove drops the component with the given ID. It returns false when there is no such component.
func (c *Components) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for index, row := range c.rows {
		for i, comp := range row {
			if comp.ID() != id {
				continue
			}

			c.rows[index] = append(row[:i:i], row[i+1:]...)
			if c.registry != nil {
				c.registry.remove(id)
			}
			return true
		}
	}
	return false
}

// Get returns the component with the given ID.
func (c *Components) Get(id string) (Component, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	comp := c.find(id)
	return comp, comp != nil
}

// All returns every component in layout order.
func (c *Components) All() []Component {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var all []Component
	for _, row := range c.rows {
		all = append(all, row...)
	}
	return all
}

// MessageComponents renders the non-empty rows to be sent with a message.
func (c *Components) MessageComponents() []discordgo.MessageComponent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var rows []discordgo.MessageComponent
	for _, row := range c.rows {
		if len(row) == 0 {
			continue
		}

		built := make([]discordgo.MessageComponent, 0, len(row))
		for _, comp := range row {
			built = append(built, comp.build())
		}
		rows = append(rows, discordgo.ActionsRow{Components: built})
	}
	return rows
}
