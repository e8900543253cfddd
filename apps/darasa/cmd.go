package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/core/register"
	"github.com/trezcool/darasa/core/roster"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	out          io.Writer
	defaultBatch string
	catalogSvc   *catalog.Service
	regSvc       *register.Service
	newSession   func(batchID string) *roster.Session
}

// batch resolves the -batch flag, falling back to the session's batch.
func (cli *commandLine) batch(flagVal string) string {
	if flagVal != "" {
		return flagVal
	}
	return cli.defaultBatch
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  catalog -batch ID                                             - print the course catalog")
	fmt.Fprintln(cli.out, "  staff-register -staff ID -name NAME -month YYYY-MM            - print a staff member's monthly register")
	fmt.Fprintln(cli.out, "  student-register -batch ID -course ID -year YEAR -month YYYY-MM [-section NAME]")
	fmt.Fprintln(cli.out, "                                                                - print a class register")
	fmt.Fprintln(cli.out, "  roster -batch ID -course ID -year YEAR -date YYYY-MM-DD [-section NAME] [-absent ROLLS] [-save]")
	fmt.Fprintln(cli.out, "                                                                - view or record a day's roster")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "catalog":
		return cli.catalog(args[2:])
	case "staff-register":
		return cli.staffRegister(args[2:])
	case "student-register":
		return cli.studentRegister(args[2:])
	case "roster":
		return cli.roster(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) catalog(args []string) error {
	cmd := flag.NewFlagSet("catalog", flag.ExitOnError)
	batchID := cmd.String("batch", "", "The batch identifier.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	batch := cli.batch(*batchID)
	if batch == "" {
		cmd.Usage()
		return errHelp
	}

	hier, err := cli.catalogSvc.Hierarchy(context.Background(), batch)
	if err != nil {
		return err
	}
	for _, course := range hier.Courses {
		fmt.Fprintf(cli.out, "%s (%s)\n", course.Name, course.ID)
		for _, year := range course.Years {
			sections := make([]string, 0, len(year.Sections))
			for _, section := range year.Sections {
				sections = append(sections, section.Name)
			}
			fmt.Fprintf(cli.out, "  %s  [%s]\n", year.Name, strings.Join(sections, " "))
		}
	}
	return nil
}

func (cli *commandLine) staffRegister(args []string) error {
	cmd := flag.NewFlagSet("staff-register", flag.ExitOnError)
	staffID := cmd.String("staff", "", "The staff member's identifier.")
	name := cmd.String("name", "", "The staff member's display name.")
	monthArg := cmd.String("month", "", "The month to print, as YYYY-MM.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *staffID == "" || *monthArg == "" {
		cmd.Usage()
		return errHelp
	}
	year, month, err := parseMonth(*monthArg)
	if err != nil {
		return err
	}

	row, err := cli.regSvc.StaffRegister(context.Background(), register.Person{ID: *staffID, Name: *name}, year, month)
	if err != nil {
		return err
	}
	cli.printRows(row)
	return nil
}

func (cli *commandLine) studentRegister(args []string) error {
	cmd := flag.NewFlagSet("student-register", flag.ExitOnError)
	batchID := cmd.String("batch", "", "The batch identifier.")
	scope := scopeFlags(cmd)
	monthArg := cmd.String("month", "", "The month to print, as YYYY-MM.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if cli.batch(*batchID) == "" || scope.CourseID == "" || scope.Year == "" || *monthArg == "" {
		cmd.Usage()
		return errHelp
	}
	year, month, err := parseMonth(*monthArg)
	if err != nil {
		return err
	}

	rows, err := cli.regSvc.StudentRegister(context.Background(), *scope, year, month)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(cli.out, "nothing to show for this scope")
		return nil
	}
	cli.printRows(rows...)
	return nil
}

func (cli *commandLine) roster(args []string) error {
	cmd := flag.NewFlagSet("roster", flag.ExitOnError)
	batchID := cmd.String("batch", "", "The batch identifier.")
	scope := scopeFlags(cmd)
	date := cmd.String("date", "", "The day to record, as YYYY-MM-DD.")
	absent := cmd.String("absent", "", "Comma-separated roll numbers to mark absent.")
	save := cmd.Bool("save", false, "Save the roster after marking.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	batch := cli.batch(*batchID)
	if batch == "" || scope.CourseID == "" || scope.Year == "" || *date == "" {
		cmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	session := cli.newSession(batch)
	session.SetScope(*scope, *date)
	if err := session.View(ctx); err != nil {
		if err == roster.ErrNoStudents {
			fmt.Fprintln(cli.out, "no students found for this scope")
			return nil
		}
		return err
	}

	if *absent != "" {
		marked, err := cli.markAbsent(session, *absent)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "marked %d absent\n", marked)
	}

	for _, entry := range session.Entries() {
		mark := "P"
		if !entry.Present {
			mark = "A"
		}
		fmt.Fprintf(cli.out, "%-4s %-24s %s  %s\n", entry.RollNumber, entry.Name, mark, entry.Remarks)
	}

	if *save {
		if err := session.Save(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "saved")
	}
	return nil
}

func (cli *commandLine) markAbsent(session *roster.Session, rolls string) (int, error) {
	wanted := make(map[string]bool)
	for _, roll := range strings.Split(rolls, ",") {
		wanted[strings.TrimSpace(roll)] = true
	}
	var marked int
	for i, entry := range session.Entries() {
		if !wanted[entry.RollNumber] {
			continue
		}
		if err := session.ToggleAttendance(i, false); err != nil {
			return marked, err
		}
		marked++
	}
	return marked, nil
}

func (cli *commandLine) printRows(rows ...register.Row) {
	for _, row := range rows {
		marks := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			marks = append(marks, cell.Status.Mark())
		}
		fmt.Fprintf(cli.out, "%-24s %-6s %s\n", row.PersonName, row.RollNumber, strings.Join(marks, " "))
		fmt.Fprintf(cli.out, "  present %d / absent %d / days %d\n", row.TotalPresent, row.TotalAbsent, row.TotalDays)
	}
}

// scopeFlags registers the shared scope flags on cmd.
func scopeFlags(cmd *flag.FlagSet) *catalog.Scope {
	scope := &catalog.Scope{}
	cmd.StringVar(&scope.CourseID, "course", "", "The course identifier.")
	cmd.StringVar(&scope.Year, "year", "", "The academic year, e.g. 2024-25.")
	cmd.StringVar(&scope.Section, "section", "", "The section name; omit for a year-wide scope.")
	return scope
}

func parseMonth(arg string) (int, time.Month, error) {
	parts := strings.SplitN(arg, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("month must be of form YYYY-MM (got '%s')", arg)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("month must be of form YYYY-MM (got '%s')", arg)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("month must be of form YYYY-MM (got '%s')", arg)
	}
	return year, time.Month(m), nil
}
