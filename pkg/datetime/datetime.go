/*
datetime implements a tool which reports the current time, converts
between timezones and performs date arithmetic
*/
package datetime

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type datetime struct {
	now   func() time.Time
	local *time.Location
}

type Opt func(*datetime) error

var _ tool.Tool = (*datetime)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	toolName        = "datetime"
	toolDescription = "Get current date and time, timezone information, and perform date calculations."
	Layout          = "2006-01-02 15:04:05"
)

var (
	actions   = []any{"current", "timezone", "convert", "add", "diff"}
	timezones = []string{
		"UTC",
		"America/New_York",
		"America/Los_Angeles",
		"Europe/London",
		"Europe/Paris",
		"Asia/Tokyo",
		"Australia/Sydney",
		"Asia/Dubai",
		"Asia/Shanghai",
	}
	units = map[string]time.Duration{
		"second": time.Second,
		"minute": time.Minute,
		"hour":   time.Hour,
		"day":    24 * time.Hour,
		"week":   7 * 24 * time.Hour,
	}
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func New(opts ...Opt) (tool.Tool, error) {
	t := &datetime{now: time.Now, local: time.Local}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// WithClock sets the function which returns the current time
func WithClock(fn func() time.Time) Opt {
	return func(t *datetime) error {
		if fn == nil {
			return chatbot.ErrBadParameter.With("nil clock")
		}
		t.now = fn
		return nil
	}
}

// WithLocation sets the local timezone
func WithLocation(loc *time.Location) Opt {
	return func(t *datetime) error {
		if loc == nil {
			return chatbot.ErrBadParameter.With("nil location")
		}
		t.local = loc
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// TOOL INTERFACE

func (t *datetime) Spec() schema.ToolSpec {
	return schema.ToolSpec{
		Name:        toolName,
		Description: toolDescription,
		Parameters: []schema.ToolParameter{
			schema.NewParameter("action", schema.TypeString, "The action to perform: 'current' (current time), 'timezone' (list timezones), 'convert' (convert timezone), 'add' (add time), 'diff' (time difference)", true).WithEnum(actions...),
			schema.NewParameter("timezone", schema.TypeString, "Timezone name (e.g., 'UTC', 'America/New_York', 'Europe/London')", false),
			schema.NewParameter("amount", schema.TypeString, "Amount to add or subtract (e.g., '1 day', '2 hours', '-30 minutes')", false),
			schema.NewParameter("date1", schema.TypeString, "First date for comparison (format: YYYY-MM-DD HH:MM:SS)", false),
			schema.NewParameter("date2", schema.TypeString, "Second date for comparison (format: YYYY-MM-DD HH:MM:SS)", false),
		},
	}
}

func (t *datetime) Execute(_ context.Context, args schema.Args) (string, error) {
	switch action := args.String("action"); action {
	case "current":
		if tz := args.String("timezone"); tz != "" {
			return t.convert(tz)
		}
		now := t.now()
		return fmt.Sprintf("Current time:\nUTC: %s\nLocal: %s", now.UTC().Format(Layout+" MST"), now.In(t.local).Format(Layout)), nil
	case "timezone":
		return "Common timezones: " + strings.Join(timezones, ", "), nil
	case "convert":
		tz := args.String("timezone")
		if tz == "" {
			return "", chatbot.ErrBadParameter.With("timezone parameter required for convert action")
		}
		return t.convert(tz)
	case "add":
		return t.add(args.String("amount"), args.String("timezone"))
	case "diff":
		return diff(args.String("date1"), args.String("date2"))
	default:
		return "", chatbot.ErrBadParameter.Withf("unknown action %q", action)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t *datetime) convert(tz string) (string, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", chatbot.ErrBadParameter.Withf("unknown timezone %q", tz)
	}
	return fmt.Sprintf("Current time in %s: %s", tz, t.now().In(loc).Format(Layout+" MST")), nil
}

func (t *datetime) add(amount, tz string) (string, error) {
	if amount == "" {
		return "", chatbot.ErrBadParameter.With("amount parameter required for add action")
	}
	delta, err := ParseAmount(amount)
	if err != nil {
		return "", err
	}
	loc := t.local
	if tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			return "", chatbot.ErrBadParameter.Withf("unknown timezone %q", tz)
		}
	}
	now := t.now().In(loc)
	return fmt.Sprintf("Current time: %s\nAfter adding %s: %s", now.Format(Layout), amount, now.Add(delta).Format(Layout)), nil
}

func diff(date1, date2 string) (string, error) {
	if date1 == "" || date2 == "" {
		return "", chatbot.ErrBadParameter.With("date1 and date2 parameters required for diff action")
	}
	t1, err := parseDate(date1)
	if err != nil {
		return "", err
	}
	t2, err := parseDate(date2)
	if err != nil {
		return "", err
	}
	delta := t2.Sub(t1)
	if delta < 0 {
		delta = -delta
	}
	return fmt.Sprintf("Time difference between %s and %s:\n%s", date1, date2, FormatDuration(delta)), nil
}

// ParseAmount parses an amount such as "1 day", "2 hours" or "-30 minutes"
func ParseAmount(amount string) (time.Duration, error) {
	fields := strings.Fields(amount)
	if len(fields) != 2 {
		return 0, chatbot.ErrBadParameter.With("amount should be in format 'number unit' (e.g., '1 day')")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, chatbot.ErrBadParameter.Withf("invalid number %q", fields[0])
	}
	unit, exists := units[strings.TrimSuffix(strings.ToLower(fields[1]), "s")]
	if !exists {
		return 0, chatbot.ErrBadParameter.Withf("unsupported time unit %q", fields[1])
	}
	return time.Duration(n) * unit, nil
}

// FormatDuration returns a duration as days, hours, minutes and seconds
func FormatDuration(d time.Duration) string {
	seconds := int64(d / time.Second)
	days := seconds / 86400
	seconds %= 86400
	hours := seconds / 3600
	seconds %= 3600
	minutes := seconds / 60
	seconds %= 60
	return fmt.Sprintf("%d days, %d hours, %d minutes, %d seconds", days, hours, minutes, seconds)
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{Layout, time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, chatbot.ErrBadParameter.Withf("invalid date %q, dates should be in format YYYY-MM-DD HH:MM:SS", value)
}
