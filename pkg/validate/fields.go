package validate

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chemexpo/factodb/pkg/batch"
)

const (
	msgRequired = "This field is required."
	msgLength   = "Ensure this value has at most %d characters (it has %d)."
	msgInt      = "Enter a whole number."
	msgFloat    = "Enter a number."
	msgBool     = "Enter a valid boolean."
	msgDate     = "Enter a valid date."
	msgChoice   = "Select a valid choice. %s is not one of the available choices."
)

// cells parses fields of one row and records their errors.
type cells struct {
	rep *batch.Report
	row batch.Row
}

func (c cells) add(col, msg string, args ...any) {
	c.rep.Add(c.row.Num, col, msg, args...)
}

func (c cells) str(col string, limit int, required bool) string {
	s := c.row.Get(col)
	if s == "" {
		if required {
			c.add(col, msgRequired)
		}
		return ""
	}
	if n := utf8.RuneCountInString(s); limit > 0 && n > limit {
		c.add(col, msgLength, limit, n)
	}
	return s
}

func (c cells) choice(col string, choices ...string) string {
	s := c.row.Get(col)
	if s == "" {
		return ""
	}
	for _, ch := range choices {
		if s == ch {
			return s
		}
	}
	c.add(col, msgChoice, s)
	return s
}

func (c cells) id(col string, required bool) int64 {
	s := c.row.Get(col)
	if s == "" {
		if required {
			c.add(col, msgRequired)
		}
		return 0
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		c.add(col, msgInt)
		return 0
	}
	return i
}

func (c cells) optID(col string) *int64 {
	if c.row.Get(col) == "" {
		return nil
	}
	i := c.id(col, false)
	if i == 0 {
		return nil
	}
	return &i
}

func (c cells) optInt(col string) *int {
	s := c.row.Get(col)
	if s == "" {
		return nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		c.add(col, msgInt)
		return nil
	}
	return &i
}

func (c cells) optFloat(col string) *float64 {
	s := c.row.Get(col)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.add(col, msgFloat)
		return nil
	}
	return &f
}

// optFraction parses a float that must lie in [0,1].
func (c cells) optFraction(col string) *float64 {
	f := c.optFloat(col)
	if f != nil && (*f < 0 || *f > 1) {
		c.add(col, "Quantity %s must be between 0 and 1", c.row.Get(col))
	}
	return f
}

func (c cells) optBool(col string) *bool {
	s := c.row.Get(col)
	if s == "" {
		return nil
	}
	b, ok := ParseBool(s)
	if !ok {
		c.add(col, msgBool)
		return nil
	}
	return &b
}

func (c cells) optDate(col string) *time.Time {
	s := c.row.Get(col)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		c.add(col, msgDate)
		return nil
	}
	return &t
}

// ParseBool accepts true/false, yes/no and 1/0 in any case.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	}
	return false, false
}
