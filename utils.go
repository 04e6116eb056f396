package pricer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// csvRow is one CSV record addressed by header name.
type csvRow struct {
	line    int
	indices map[string]int
	cells   []string
}

func (self csvRow) cell(field string) (string, bool) {
	idx, ok := self.indices[field]
	if !ok || idx >= len(self.cells) {
		return "", false
	}
	return strings.TrimSpace(self.cells[idx]), true
}

func getStrField(row csvRow, field string) string {
	value, _ := row.cell(field)
	return value
}

func getFloat64Field(row csvRow, field string) (float64, error) {
	value, ok := row.cell(field)
	if !ok || value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		msg := fmt.Sprintf("Parsing line %d failed. "+
			"Field %s=%q is not a number.", row.line, field, value)
		glog.Error(msg)
		return 0, errors.New(msg)
	}
	return parsed, nil
}

func getIntField(row csvRow, field string) (int, error) {
	value, ok := row.cell(field)
	if !ok || value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		msg := fmt.Sprintf("Parsing line %d failed. "+
			"Field %s=%q is not an integer.", row.line, field, value)
		glog.Error(msg)
		return 0, errors.New(msg)
	}
	return parsed, nil
}

func getUint64Field(row csvRow, field string) (uint64, error) {
	value, ok := row.cell(field)
	if !ok || value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		msg := fmt.Sprintf("Parsing line %d failed. "+
			"Field %s=%q is not an unsigned integer.", row.line, field, value)
		glog.Error(msg)
		return 0, errors.New(msg)
	}
	return parsed, nil
}
