package todolist

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/idilsaglam/todolist/internal/model"
)

// CSVHeader is the first line of every CSV export.
const CSVHeader = "Id,Description,Done"

// CSV renders the header followed by one "id,description,done" row per
// item, ordered by id. Descriptions are written as-is: one containing a
// comma will not read back correctly.
func (c *Collection) CSV() []byte {
	var b bytes.Buffer
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, it := range c.Items() {
		fmt.Fprintf(&b, "%d,%s,%t\n", it.ID, it.Description, it.Done)
	}
	return b.Bytes()
}

// ParseCSV decodes the CSV format. The first line is skipped as the
// header, blank lines are ignored, and each row is split on its first two
// commas only. A done field is true only when it reads exactly "true".
// NextID is one past the largest id, or 0 when there are no rows.
func ParseCSV(data []byte) (*Collection, error) {
	c := New()
	rows := 0
	var maxID uint32

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if i == 0 || line == "" {
			continue
		}
		lineNo := i + 1

		fields := strings.SplitN(line, ",", 3)
		if len(fields) != 3 {
			return nil, &ParseError{Format: "csv", Line: lineNo,
				Err: fmt.Errorf("want 3 fields, got %d", len(fields))}
		}
		id, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 32)
		if err != nil {
			return nil, &ParseError{Format: "csv", Line: lineNo,
				Err: fmt.Errorf("invalid id %q", fields[0])}
		}
		if id == math.MaxUint32 {
			return nil, &ParseError{Format: "csv", Line: lineNo,
				Err: fmt.Errorf("id %d leaves no room for next id", id)}
		}

		key := Normalize(fields[1])
		if _, dup := c.items[key]; dup {
			return nil, &ParseError{Format: "csv", Line: lineNo,
				Err: fmt.Errorf("duplicate description %q", key)}
		}
		if other, dup := c.keys[uint32(id)]; dup {
			return nil, &ParseError{Format: "csv", Line: lineNo,
				Err: fmt.Errorf("id %d already used by %q", id, other)}
		}

		c.put(key, model.Item{ID: uint32(id), Description: key, Done: fields[2] == "true"})
		if rows == 0 || uint32(id) > maxID {
			maxID = uint32(id)
		}
		rows++
	}

	if rows > 0 {
		c.nextID = maxID + 1
	}
	return c, nil
}
