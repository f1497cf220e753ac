package definition

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"roadmapper/internal/roadmap"
)

// CSV columns. Header names are matched case-insensitively; only group,
// task and start are required.
const (
	ColumnGroup  = "group"
	ColumnTask   = "task"
	ColumnParent = "parent"
	ColumnStart  = "start"
	ColumnEnd    = "end"
	ColumnKind   = "kind"
)

// Row kinds.
const (
	KindTask      = "task"
	KindMilestone = "milestone"
)

var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02/01/2006",
}

// ReadCSV opens path and parses it with ParseCSV.
func ReadCSV(path string) ([]GroupDef, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	groups, err := ParseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return groups, nil
}

// ParseCSV reads groups from CSV rows. Each row is a task or a milestone:
//
//	group,task,parent,start,end,kind
//	Platform,Storage rewrite,,2024-01-15,2024-03-31,task
//	Platform,Beta,Storage rewrite,2024-02-15,,milestone
//	Platform,Migration tooling,Storage rewrite,2024-02-01,2024-03-15,task
//
// A task row with a parent becomes a parallel task of the named task in the
// same group; a milestone row must name its parent task. A missing end
// makes the task a single day. Parents must appear before the rows that
// reference them. Groups and tasks keep their first-seen order.
//
// Dates may be YYYY-MM-DD, RFC 3339, "YYYY-MM-DD HH:MM:SS", MM/DD/YYYY or
// DD/MM/YYYY, tried in that order. A slash date is read as MM/DD/YYYY
// whenever that parses, so 03/04/2024 is March 4; it is only read as
// DD/MM/YYYY when the first field is above 12.
func ParseCSV(r io.Reader) ([]GroupDef, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	// Create case-insensitive column mapping
	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{ColumnGroup, ColumnTask, ColumnStart} {
		if _, ok := columnMap[required]; !ok {
			return nil, fmt.Errorf("column '%s' not found in CSV. Available columns: %v", required, header)
		}
	}

	b := &csvBuilder{groupIndex: make(map[string]int)}
	var errs []error
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		field := func(name string) string {
			i, ok := columnMap[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if err := b.add(field); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return b.groups, nil
}

// csvBuilder assembles GroupDefs row by row. Tasks are addressed by index
// path so later appends do not invalidate earlier references.
type csvBuilder struct {
	groups     []GroupDef
	groupIndex map[string]int
	taskPaths  []map[string][]int
}

func (b *csvBuilder) add(field func(string) string) error {
	group, text := field(ColumnGroup), field(ColumnTask)
	if group == "" || text == "" {
		return errors.New("group and task must not be empty")
	}
	start, err := parseCSVDate(field(ColumnStart))
	if err != nil {
		return err
	}

	gi, ok := b.groupIndex[group]
	if !ok {
		gi = len(b.groups)
		b.groupIndex[group] = gi
		b.groups = append(b.groups, GroupDef{Text: group})
		b.taskPaths = append(b.taskPaths, make(map[string][]int))
	}
	paths := b.taskPaths[gi]

	parent := field(ColumnParent)
	var parentPath []int
	if parent != "" {
		p, ok := paths[parent]
		if !ok {
			return fmt.Errorf("parent task %q not defined in group %q", parent, group)
		}
		parentPath = p
	}

	switch kind := strings.ToLower(field(ColumnKind)); kind {
	case "", KindTask:
		end := start
		if s := field(ColumnEnd); s != "" {
			if end, err = parseCSVDate(s); err != nil {
				return err
			}
		}
		if start > end {
			return fmt.Errorf("task %q: start %s after end %s: %w", text, start, end, roadmap.ErrInvalidRange)
		}
		task := TaskDef{Text: text, Start: start, End: end}
		var siblings *[]TaskDef
		if parentPath == nil {
			siblings = &b.groups[gi].Tasks
		} else {
			siblings = &b.task(gi, parentPath).Tasks
		}
		*siblings = append(*siblings, task)
		if _, dup := paths[text]; !dup {
			paths[text] = append(append([]int(nil), parentPath...), len(*siblings)-1)
		}
	case KindMilestone:
		if parentPath == nil {
			return fmt.Errorf("milestone %q needs a parent task", text)
		}
		t := b.task(gi, parentPath)
		t.Milestones = append(t.Milestones, MilestoneDef{Text: text, Date: start})
	default:
		return fmt.Errorf("unknown kind %q (expected task or milestone)", kind)
	}
	return nil
}

func (b *csvBuilder) task(gi int, path []int) *TaskDef {
	t := &b.groups[gi].Tasks[path[0]]
	for _, i := range path[1:] {
		t = &t.Tasks[i]
	}
	return t
}

// parseCSVDate accepts the formats spreadsheets commonly export and
// normalises them to YYYY-MM-DD.
func parseCSVDate(s string) (string, error) {
	var err error
	for _, format := range dateFormats {
		var t time.Time
		if t, err = time.Parse(format, s); err == nil {
			return t.Format(roadmap.DateLayout), nil
		}
	}
	return "", fmt.Errorf("%w %q: %v", roadmap.ErrInvalidDate, s, err)
}
