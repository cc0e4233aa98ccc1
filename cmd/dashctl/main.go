// Command dashctl queries the performance API from a terminal: it lists and
// filters the roster, shows a student's metrics, and imports or exports
// data files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/stemsi/perfdash/internal/analytics"
	"github.com/stemsi/perfdash/internal/client"
	"github.com/stemsi/perfdash/internal/config"
	"github.com/stemsi/perfdash/internal/database"
	"github.com/stemsi/perfdash/internal/logger"
	"github.com/stemsi/perfdash/internal/model"
	"github.com/stemsi/perfdash/internal/repository"
	"github.com/stemsi/perfdash/internal/service"
)

const usage = `Usage: dashctl <command> [flags]

Commands:
  students  [-q text] [-department name] [-year n]   list and filter students
  student   -id n                                    show a student's metrics
  import    -type t FILE                             import a csv, xlsx or json file
  export    [-id n] [-format f] [-department name] [-year n] [-o path]
`

type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	api      *client.Client
	students *repository.StudentRepository
	files    *service.FileService
	out      *output
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	// stdout carries the command output.
	log := logger.SetupWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	// Imports drop the server's cached data when the cache is shared.
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, cache will not be invalidated")
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	api := client.New(cfg.PerformanceAPIURL, cfg.UpstreamTimeout, log)
	students := repository.NewStudentRepository(api, repository.NewCache(rdb, cfg.CacheTTL, log))

	a := &app{
		cfg:      cfg,
		log:      log,
		api:      api,
		students: students,
		files:    service.NewFileService(api, students, cfg.MaxUploadBytes, log),
		out:      newOutput(os.Stdout),
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "students":
		return a.listStudents(ctx, args)
	case "student":
		return a.showStudent(ctx, args)
	case "import":
		return a.importFile(ctx, args)
	case "export":
		return a.export(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprint(os.Stderr, usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) listStudents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("students", flag.ContinueOnError)
	query := fs.String("q", "", "search name, student code or email")
	department := fs.String("department", "", "exact department")
	year := fs.String("year", "", "year of study")
	if err := fs.Parse(args); err != nil {
		return err
	}

	roster, err := a.students.List(ctx)
	if err != nil {
		return err
	}
	matching := analytics.FilterStudents(roster, *query, analytics.StudentFilter{
		Department: *department,
		Year:       *year,
	})

	rows := make([][]string, 0, len(matching))
	for _, s := range matching {
		rows = append(rows, []string{
			strconv.Itoa(s.ID), s.StudentID, s.FullName(), s.Department,
			strconv.Itoa(s.YearOfStudy), strconv.Itoa(s.Semester), s.Email,
		})
	}
	return a.out.print(matching, []string{"ID", "CODE", "NAME", "DEPARTMENT", "YEAR", "SEM", "EMAIL"}, rows)
}

func (a *app) showStudent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("student", flag.ContinueOnError)
	id := fs.Int("id", 0, "student id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("-id is required")
	}

	bundle, err := a.api.GetPerformance(ctx, *id)
	if err != nil {
		return err
	}

	overview := service.BuildOverview(bundle)
	attendance := analytics.AttendanceBySubject(bundle.Attendance)
	exams := analytics.ExamsBySubject(bundle.Exams)

	rows := [][]string{
		{"student", fmt.Sprintf("%s (%s)", bundle.Student.FullName(), bundle.Student.StudentID)},
		{"department", bundle.Student.Department},
		{"attendance", fmt.Sprintf("%.1f%% (%d/%d)", overview.AttendancePercentage, overview.PresentCount, overview.TotalClasses)},
		{"exams", fmt.Sprintf("%.1f%% over %d exams", overview.AverageExamScore, overview.ExamCount)},
		{"projects", strconv.Itoa(overview.ProjectCount)},
		{"certifications", strconv.Itoa(overview.CertificationCount)},
	}
	for _, s := range attendance {
		rows = append(rows, []string{"attendance: " + s.Subject, fmt.Sprintf("%.1f%%", s.Value)})
	}
	for _, s := range exams {
		rows = append(rows, []string{"exams: " + s.Subject, fmt.Sprintf("%.1f%% (%s)", s.Value, analytics.ScoreBand(s.Value))})
	}

	return a.out.print(struct {
		Student    model.Student           `json:"student"`
		Overview   service.StudentOverview `json:"overview"`
		Attendance []analytics.SubjectStat `json:"attendance_by_subject"`
		Exams      []analytics.SubjectStat `json:"exams_by_subject"`
	}{bundle.Student, overview, attendance, exams}, []string{"METRIC", "VALUE"}, rows)
}

func (a *app) importFile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	recordType := fs.String("type", "", "students, attendance, exams, certifications or projects")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("exactly one FILE is required")
	}

	path := fs.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	result, err := a.files.Import(ctx, model.RecordType(*recordType), filepath.Base(path), info.Size(), f)
	if err != nil {
		return err
	}

	rows := [][]string{
		{"added", strconv.Itoa(result.AddedCount)},
		{"skipped", strconv.Itoa(result.SkippedCount)},
	}
	for _, msg := range result.ErrorMessages {
		rows = append(rows, []string{"error", msg})
	}
	return a.out.print(result, []string{"RESULT", "VALUE"}, rows)
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	id := fs.Int("id", 0, "export a single student")
	format := fs.String("format", "json", "csv, xlsx or json")
	department := fs.String("department", "", "only this department (all students)")
	year := fs.String("year", "", "only this year of study (all students)")
	dest := fs.String("o", "", "output path (default: the suggested filename)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		file *service.ExportFile
		err  error
	)
	if *id > 0 {
		file, err = a.files.ExportStudent(ctx, *id, *format)
	} else {
		file, err = a.files.ExportAll(ctx, *format, *department, *year)
	}
	if err != nil {
		return err
	}
	defer file.Body.Close()

	path := *dest
	if path == "" {
		path = file.Filename
	}

	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	n, err := io.Copy(w, file.Body)
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	a.log.Info().Str("path", path).Int64("bytes", n).Msg("Export written")
	return nil
}
