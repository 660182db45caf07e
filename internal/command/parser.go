// Package command maps typed lines to timer commands for the headless
// mode, where input arrives on stdin instead of as key presses.
package command

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
	"github.com/hammamikhairi/ottotimer/internal/timeinput"
)

// Action classifies a parsed line.
type Action int

const (
	ActionUnknown Action = iota
	ActionEvent          // forward Command.Event to the timer
	ActionStatus
	ActionHelp
	ActionQuit
)

// String returns a human-readable action.
func (a Action) String() string {
	switch a {
	case ActionEvent:
		return "event"
	case ActionStatus:
		return "status"
	case ActionHelp:
		return "help"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a parsed line.
type Command struct {
	Action Action
	Event  domain.Event
}

type patternRule struct {
	regex *regexp.Regexp
	cmd   Command
}

func event(kind domain.EventKind) Command {
	return Command{Action: ActionEvent, Event: domain.Event{Kind: kind}}
}

// Parser matches input lines using keywords and simple patterns.
type Parser struct {
	log      *logger.Logger
	patterns []patternRule
	set      *regexp.Regexp
}

// NewParser creates a keyword parser.
func NewParser(log *logger.Logger) *Parser {
	p := &Parser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(start|go|begin|s)$`), event(domain.EventEnableTimer)},
		{regexp.MustCompile(`(?i)^(pause|resume|unpause|toggle|p)$`), event(domain.EventTogglePause)},
		{regexp.MustCompile(`(?i)^(reset|restart|r)$`), event(domain.EventResetTimer)},
		{regexp.MustCompile(`(?i)^(ok|okay|stop|dismiss|silence|o)$`), event(domain.EventStopRinging)},
		{regexp.MustCompile(`(?i)^(status|left|remaining|time|t)$`), Command{Action: ActionStatus}},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), Command{Action: ActionHelp}},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), Command{Action: ActionQuit}},
	}
	p.set = regexp.MustCompile(`(?i)^(set|duration|d)\s+(.+)$`)
	return p
}

// Parse converts a line into a command. Unrecognised lines return
// ActionUnknown; a "set" with a bad duration returns an error wrapping
// domain.ErrInvalidDuration.
func (p *Parser) Parse(input string) (Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{Action: ActionUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	if m := p.set.FindStringSubmatch(trimmed); m != nil {
		d, err := timeinput.ParseDuration(m[2])
		if err != nil {
			return Command{}, fmt.Errorf("set: %w", err)
		}
		return Command{
			Action: ActionEvent,
			Event:  domain.Event{Kind: domain.EventSetDuration, Duration: d},
		}, nil
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched %s %s", rule.cmd.Action, rule.cmd.Event.Kind)
			return rule.cmd, nil
		}
	}

	p.log.Debug("no match, returning unknown command")
	return Command{Action: ActionUnknown}, nil
}

// Help lists the accepted commands.
func Help() []string {
	return []string{
		"start            start the countdown",
		"pause / resume   toggle pause",
		"reset            stop and return to the configured duration",
		"ok               silence the alarm",
		"set <duration>   change the duration (5m, 1:30, 130)",
		"status           show the remaining time",
		"quit             exit",
	}
}
