package dump

import (
	"fmt"
	"strings"
)

// confBlock renders one record in the fixed multi-line export layout.
type confBlock struct {
	ConfID       int
	PresID       int
	Name         string
	Short        string
	ShortWidth   int // padding of the short name, 100 when zero
	Start        string
	Category     string
	DescCategory string
	City         string
	Country      string
	Web          string
	Title        []string
	PresCategory string
	PresDesc     string
}

func (c confBlock) text() string {
	width := c.ShortWidth
	if width == 0 {
		width = 100
	}
	lines := []string{
		fmt.Sprintf("%10d,%10d", c.ConfID, c.PresID),
		c.Name,
		fmt.Sprintf("%-*s,%-9s,%s", width, c.Short, c.Start, c.Category),
		c.DescCategory,
		c.City,
		c.Country,
		c.Web,
	}
	lines = append(lines, c.Title...)
	lines = append(lines, c.PresCategory, c.PresDesc)
	return strings.Join(lines, "\n") + "\n"
}

// sqlDump wraps blocks in the two preamble and five footer lines of an
// SQL*Plus spool file. Records are separated by a blank line.
func sqlDump(blocks ...confBlock) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.text()
	}
	return "SQL> SELECT * FROM cms_conf;\n\n" +
		strings.Join(parts, "\n") +
		fmt.Sprintf("\n%d rows selected.\n\nSQL> \nSQL> exit\n", len(blocks))
}

var ichep = confBlock{
	ConfID:       1001,
	PresID:       5001,
	Name:         "International Conference on High Energy Physics",
	Short:        "ICHEP 2014",
	Start:        "02-JUL-14",
	Category:     "CONF",
	DescCategory: "Conference",
	City:         "Valencia",
	Country:      "Spain",
	Title:        []string{"Search for new physics in", "dilepton final states"},
	PresCategory: "TALK",
	PresDesc:     "Plenary talk",
}

var leptonPhoton = confBlock{
	ConfID:       1002,
	PresID:       5002,
	Name:         "Lepton Photon Symposium",
	Short:        "LP2013",
	Start:        "24-JUN-13",
	Category:     "SYMP",
	DescCategory: "Symposium",
	City:         "San Francisco, CA",
	Country:      "USA",
	Web:          "http://lp2013.slac.stanford.edu",
	Title:        []string{"Top quark mass measurements at the LHC"},
	PresCategory: "TALK",
	PresDesc:     "Parallel talk",
}

// singleLine returns a copy of c whose title fits on one line.
func singleLine(c confBlock) confBlock {
	c.Title = []string{strings.Join(c.Title, " ")}
	return c
}
