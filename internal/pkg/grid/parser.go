package grid

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
	"github.com/xuri/excelize/v2"
)

// Sheet is a parsed monthly shift grid. Year and Month are zero when the
// workbook carries no recognizable period.
type Sheet struct {
	Name      string
	Year      int
	Month     int
	Employees []shiftcode.EmployeeMonthInput
}

var (
	idHeaders   = []string{"員工編號", "工號", "employee_id", "employeeid", "id"}
	nameHeaders = []string{"姓名", "員工姓名", "name", "employee_name", "employeename"}

	// "2025年3月" / "2025年03月班表"
	yearMonthCJK = regexp.MustCompile(`(\d{4})年0?(\d{1,2})月`)
	// "2025-03" / "2025/3"
	yearMonthISO = regexp.MustCompile(`(\d{4})[-/]0?(\d{1,2})`)
	// "1", "01", "1日"
	dayHeader = regexp.MustCompile(`^0?(\d{1,2})日?$`)
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the first worksheet of an xlsx shift grid.
func (p *Parser) Parse(r io.Reader) (Sheet, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("failed to open shift grid: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return Sheet{}, shiftcode.ErrEmptyGrid
	}
	name := sheets[0]

	rows, err := file.GetRows(name)
	if err != nil {
		return Sheet{}, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	return parseRows(name, rows)
}

func parseRows(sheetName string, rows [][]string) (Sheet, error) {
	headerIdx := -1
	var cols columns
	for i, row := range rows {
		if c, ok := detectColumns(row); ok {
			headerIdx = i
			cols = c
			break
		}
	}
	if headerIdx < 0 {
		return Sheet{}, shiftcode.ErrGridHeaderNotFound
	}

	sheet := Sheet{Name: sheetName}
	sheet.Year, sheet.Month = findPeriod(sheetName, rows[:headerIdx])

	for _, row := range rows[headerIdx+1:] {
		id := cellAt(row, cols.id)
		if id == "" {
			continue
		}
		shifts := make([]string, cols.maxDay)
		for day, idx := range cols.days {
			shifts[day-1] = cellAt(row, idx)
		}
		sheet.Employees = append(sheet.Employees, shiftcode.EmployeeMonthInput{
			EmployeeID:   id,
			EmployeeName: cellAt(row, cols.name),
			Shifts:       shifts,
		})
	}

	if len(sheet.Employees) == 0 {
		return Sheet{}, shiftcode.ErrEmptyGrid
	}
	return sheet, nil
}

type columns struct {
	id     int
	name   int
	days   map[int]int // day of month -> column index
	maxDay int
}

func detectColumns(row []string) (columns, bool) {
	c := columns{id: -1, name: -1, days: make(map[int]int)}
	for i, raw := range row {
		header := normalizeHeader(raw)
		switch {
		case c.id < 0 && containsFold(idHeaders, header):
			c.id = i
		case c.name < 0 && containsFold(nameHeaders, header):
			c.name = i
		default:
			m := dayHeader.FindStringSubmatch(header)
			if m == nil {
				continue
			}
			day, _ := strconv.Atoi(m[1])
			if day < 1 || day > 31 {
				continue
			}
			if _, dup := c.days[day]; !dup {
				c.days[day] = i
			}
			if day > c.maxDay {
				c.maxDay = day
			}
		}
	}
	return c, c.id >= 0 && len(c.days) > 0
}

func findPeriod(sheetName string, titleRows [][]string) (int, int) {
	candidates := []string{sheetName}
	for _, row := range titleRows {
		candidates = append(candidates, row...)
	}
	for _, text := range candidates {
		for _, re := range []*regexp.Regexp{yearMonthCJK, yearMonthISO} {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			year, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			if month >= 1 && month <= 12 {
				return year, month
			}
		}
	}
	return 0, 0
}

func normalizeHeader(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
