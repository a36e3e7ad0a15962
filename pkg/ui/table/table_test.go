package table_test

import (
	"strings"
	"testing"

	// Packages
	table "github.com/mutablelogic/go-chatbot/pkg/ui/table"
	assert "github.com/stretchr/testify/assert"
)

type rows [][]any

func (r rows) Header() []string { return []string{"NAME", "VALUE"} }
func (r rows) Len() int         { return len(r) }
func (r rows) Row(i int) []any  { return r[i] }

func Test_table_001(t *testing.T) {
	assert := assert.New(t)
	data := rows{
		{"weather", 3},
		nil,
		{table.Bold{Value: "stock"}, "a|b"},
		{"empty", ""},
	}
	md := table.RenderMarkdown(data)
	lines := strings.Split(md, "\n")
	assert.Equal("| NAME | VALUE |", lines[0])
	assert.Equal("|---|---|", lines[1])
	assert.Equal("| weather | 3 |", lines[2])
	assert.Equal("| **stock** | a\\|b |", lines[3])
	assert.Equal("| empty | - |", lines[4])
	assert.Len(lines, 5)
}

func Test_table_002(t *testing.T) {
	assert := assert.New(t)
	out := table.RenderWidth(rows{{"calculator", 1.5}, {"datetime", true}}, 0)
	assert.Contains(out, "NAME")
	assert.Contains(out, "calculator")
	assert.Contains(out, "1.5")
	assert.Contains(out, "yes")
}

func Test_table_003(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("-", table.FormatCell(nil))
	assert.Equal("-", table.FormatCell(0))
	assert.Equal("abc", table.Truncate("abc", 5))
	assert.Equal("ab…", table.Truncate("abcdef", 3))
	assert.Equal("a b", table.Truncate("a\nb", 5))
}
