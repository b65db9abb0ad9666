// Package loglevel provides the four severities the test bot logs with,
// and a process-wide threshold deciding which of them are enabled.
package loglevel

import (
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Discord brand colors used for log embeds.
const (
	ColorBlurple = 0x5865F2
	ColorYellow  = 0xFEE75C
	ColorRed     = 0xED4245
)

// Level is one of Debug, Info, Warning and Error. Compare levels by pointer or with Compare.
type Level struct {
	name  string
	color int
	rank  int
}

var (
	Debug   = &Level{name: "DEBUG", color: 0, rank: 1}
	Info    = &Level{name: "INFO", color: ColorBlurple, rank: 2}
	Warning = &Level{name: "WARNING", color: ColorYellow, rank: 3}
	Error   = &Level{name: "ERROR", color: ColorRed, rank: 4}

	// Warn is an alias of Warning.
	Warn = Warning
)

// All lists every level in ascending order.
var All = []*Level{Debug, Info, Warning, Error}

var threshold atomic.Pointer[Level]

func init() {
	threshold.Store(Info)
}

// Name returns the upper-case name of the level.
func (l *Level) Name() string {
	return l.name
}

// String returns the upper-case name of the level.
func (l *Level) String() string {
	return l.name
}

// Color returns the embed color of the level. Zero means no color.
func (l *Level) Color() int {
	return l.color
}

// Compare returns a negative number when l is less severe than other, zero when they are the same level
// and a positive number otherwise.
func (l *Level) Compare(other *Level) int {
	return l.rank - other.rank
}

// IsEnabled tells whether the level is at or above the current threshold.
func (l *Level) IsEnabled() bool {
	return l.rank >= Threshold().rank
}

// Embed builds a message embed colored by the level.
func (l *Level) Embed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       l.color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: l.name,
		},
	}
}

// Threshold returns the least severe level that is currently enabled.
func Threshold() *Level {
	return threshold.Load()
}

// SetThreshold changes the least severe level that is enabled. A nil level is ignored.
func SetThreshold(level *Level) {
	if level == nil {
		return
	}
	threshold.Store(level)
}

// Enabled returns the levels at or above the current threshold in ascending order.
func Enabled() []*Level {
	current := Threshold()

	enabled := make([]*Level, 0, len(All))
	for _, l := range All {
		if l.rank >= current.rank {
			enabled = append(enabled, l)
		}
	}
	return enabled
}

// FromString returns the level of the given name, ignoring case. "WARN" is accepted for Warning.
// The second return value is false when no level matches.
func FromString(name string) (*Level, bool) {
	// A Caser is stateful, so it is not shared between callers.
	switch cases.Upper(language.Und).String(name) {
	case Debug.name:
		return Debug, true
	case Info.name:
		return Info, true
	case Warning.name, "WARN":
		return Warning, true
	case Error.name:
		return Error, true
	default:
		return nil, false
	}
}
