package core

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/spaghettifunk/tessera/engine/containers"
)

const DefaultConsoleCapacity = 2000

// ConsoleLevel is a bit flag so that several levels can be filtered at once.
type ConsoleLevel uint32

const (
	ConsoleLevelTrace ConsoleLevel = 1 << iota
	ConsoleLevelDebug
	ConsoleLevelInfo
	ConsoleLevelWarn
	ConsoleLevelError
	ConsoleLevelCritical
)

func (l ConsoleLevel) String() string {
	switch l {
	case ConsoleLevelTrace:
		return "Trace"
	case ConsoleLevelDebug:
		return "Debug"
	case ConsoleLevelInfo:
		return "Info"
	case ConsoleLevelWarn:
		return "Warning"
	case ConsoleLevelError:
		return "Error"
	case ConsoleLevelCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

type ConsoleMessage struct {
	ID     uint64
	Level  ConsoleLevel
	Text   string
	Source string
	Time   string
	Count  int
}

// NewConsoleMessage stamps the message with a second resolution time. Two
// messages with the same text in the same second share an ID.
func NewConsoleMessage(text string, level ConsoleLevel, source string, at time.Time) *ConsoleMessage {
	stamp := at.Format("15:04:05")
	return &ConsoleMessage{
		ID:     hashString(text + "\x00" + stamp),
		Level:  level,
		Text:   text,
		Source: source,
		Time:   stamp,
		Count:  1,
	}
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Console keeps the most recent log messages for the editor console.
type Console struct {
	mu       sync.Mutex
	messages *containers.RingQueue[*ConsoleMessage]
	filter   ConsoleLevel
}

func NewConsole(capacity int) *Console {
	return &Console{
		messages: containers.NewRingQueue[*ConsoleMessage](capacity),
		filter:   ConsoleLevelInfo | ConsoleLevelWarn | ConsoleLevelError,
	}
}

// AddMessage stores the message, or bumps the count of an already stored
// message with the same ID. Messages without a level are dropped.
func (c *Console) AddMessage(msg *ConsoleMessage) {
	if msg == nil || msg.Level == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var existing *ConsoleMessage
	c.messages.Each(func(_ int, m *ConsoleMessage) bool {
		if m.ID == msg.ID {
			existing = m
			return false
		}
		return true
	})
	if existing != nil {
		existing.Count++
		return
	}
	c.messages.Push(msg)
}

// Messages returns copies of the stored messages that pass the level
// filter, oldest first.
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ConsoleMessage, 0, c.messages.Len())
	c.messages.Each(func(_ int, m *ConsoleMessage) bool {
		if c.filter&m.Level != 0 {
			out = append(out, *m)
		}
		return true
	})
	return out
}

func (c *Console) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messages.Len()
}

func (c *Console) Filter() ConsoleLevel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Console) SetFilter(levels ConsoleLevel) {
	c.mu.Lock()
	c.filter = levels
	c.mu.Unlock()
}

// ToggleLevel flips a single level in the filter.
func (c *Console) ToggleLevel(level ConsoleLevel) {
	c.mu.Lock()
	c.filter ^= level
	c.mu.Unlock()
}

// Flush drops every stored message.
func (c *Console) Flush() {
	c.mu.Lock()
	c.messages.Clear()
	c.mu.Unlock()
}
