package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/hcmut-tutoring/tutorhub/internal/api"
	"github.com/hcmut-tutoring/tutorhub/internal/models"
	"github.com/hcmut-tutoring/tutorhub/internal/session"
	"github.com/hcmut-tutoring/tutorhub/internal/store"
	"github.com/hcmut-tutoring/tutorhub/internal/transport"
	"github.com/hcmut-tutoring/tutorhub/internal/view"
	"github.com/hcmut-tutoring/tutorhub/pkg/config"
	"github.com/hcmut-tutoring/tutorhub/pkg/export"
	"github.com/hcmut-tutoring/tutorhub/pkg/logger"
)

const usage = `tutorhub - terminal dashboard for the university tutoring program

Usage:
  tutorhub <command> [flags]

Commands:
  login         authenticate against the backend
  logout        clear the stored identity
  whoami        show the stored identity
  dashboard     role-specific overview (student, tutor or coordinator)
  sessions      coordinator meeting overview, cancel and export
  session       one appointment in detail
  availability  tutor slot management
  users         coordinator account management
  reports       generate and list reports
  resources     shared study materials
  forum         discussion board
  metrics       dump client request metrics
`

type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *transport.Metrics
	facade  *api.Facade
	session *session.Manager
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	stateFile, err := store.NewStateFile(cfg.State.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to open state directory", "error", err)
	}

	metrics := transport.NewMetrics()
	client := transport.NewClient(transport.ClientParams{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  logr,
		Metrics: metrics,
	})
	facade := api.New(client)

	manager := session.NewManager(session.ManagerParams{
		API:    facade,
		Store:  stateFile,
		Logger: logr,
	})

	ctx := context.Background()
	manager.Hydrate(ctx)

	a := &app{
		cfg:     cfg,
		logger:  logr,
		metrics: metrics,
		facade:  facade,
		session: manager,
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "tutorhub: %v\n", err)
		os.Exit(1)
	}

	// Let a hydration-triggered profile refresh finish persisting before
	// the process exits.
	manager.WaitRefresh()
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		a.session.Logout()
		fmt.Println("logged out")
		return nil
	case "whoami":
		return a.cmdWhoami()
	case "dashboard":
		return a.cmdDashboard(ctx)
	case "sessions":
		return a.cmdSessions(ctx, args)
	case "session":
		return a.cmdSession(ctx, args)
	case "availability":
		return a.cmdAvailability(ctx, args)
	case "users":
		return a.cmdUsers(ctx, args)
	case "reports":
		return a.cmdReports(ctx, args)
	case "resources":
		return a.cmdResources(ctx, args)
	case "forum":
		return a.cmdForum(ctx, args)
	case "metrics":
		return a.cmdMetrics()
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// Demo accounts mirroring the program's seeded users, selectable with
// login -role for quick switching between dashboards.
var demoAccounts = map[string]string{
	"student":     "student@hcmut.edu.vn",
	"tutor":       "tutor@hcmut.edu.vn",
	"coordinator": "coordinator@hcmut.edu.vn",
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "", "demo account shortcut: student, tutor or coordinator")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" && *role != "" {
		demo, ok := demoAccounts[strings.ToLower(*role)]
		if !ok {
			return fmt.Errorf("unknown demo role %q", *role)
		}
		*email = demo
		if *password == "" {
			*password = "password"
		}
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password (or -role)")
	}

	if err := a.session.Login(ctx, *email, *password); err != nil {
		return err
	}
	snapshot := a.session.Snapshot()
	fmt.Printf("logged in as %s (%s)\n", snapshot.FullName, snapshot.Role)
	return nil
}

func (a *app) cmdWhoami() error {
	if a.session.State() != session.StateAuthenticated {
		fmt.Println("not logged in")
		return nil
	}
	snapshot := a.session.Snapshot()
	fmt.Printf("%s <%s>\nrole: %s\nuser id: %s\n", snapshot.FullName, snapshot.Email, snapshot.Role, snapshot.UserID)
	if failures := a.session.RefreshFailures(); failures > 0 {
		fmt.Printf("warning: %d consecutive profile refresh failures, identity may be stale\n", failures)
	}
	return nil
}

func (a *app) cmdDashboard(ctx context.Context) error {
	snapshot := a.session.Snapshot()
	switch snapshot.Role {
	case models.RoleStudent:
		v := view.NewStudentDashboard(view.StudentDashboardParams{
			API: a.facade, Identity: a.session, Logger: a.logger,
		})
		v.Load(ctx)
		return renderStudentDashboard(v)
	case models.RoleTutor:
		v := view.NewTutorBoard(view.TutorBoardParams{
			API: a.facade, Identity: a.session, Logger: a.logger,
		})
		v.Load(ctx)
		return renderTutorBoard(v)
	case models.RoleCoordinator:
		v := view.NewCoordinatorSessions(view.CoordinatorSessionsParams{
			API: a.facade, Identity: a.session, Logger: a.logger,
		})
		v.Load(ctx)
		return renderCoordinatorOverview(v)
	default:
		return fmt.Errorf("please log in first")
	}
}

func (a *app) cmdSessions(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sessions", flag.ExitOnError)
	cancelID := fs.String("cancel", "", "cancel the session with this id")
	format := fs.String("export", "", "export the overview: csv or pdf")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := view.NewCoordinatorSessions(view.CoordinatorSessionsParams{
		API: a.facade, Identity: a.session, Logger: a.logger,
	})
	v.Load(ctx)

	if *cancelID != "" {
		if err := v.Cancel(ctx, *cancelID); err != nil {
			return err
		}
		fmt.Printf("session %s canceled\n", *cancelID)
	}

	if err := renderCoordinatorOverview(v); err != nil {
		return err
	}

	if *format != "" {
		return a.exportDataset(v.ExportDataset(), "sessions", *format)
	}
	return nil
}

func (a *app) cmdSession(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	id := fs.String("id", "", "session id")
	cancel := fs.Bool("cancel", false, "cancel this session")
	complete := fs.Bool("complete", false, "mark this session completed")
	newStart := fs.String("new-start", "", "reschedule: new start time (RFC3339)")
	newEnd := fs.String("new-end", "", "reschedule: new end time (RFC3339)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("session requires -id")
	}

	v := view.NewSessionDetail(view.SessionDetailParams{
		API: a.facade, Identity: a.session, Logger: a.logger, SessionID: *id,
	})
	v.Load(ctx)

	switch {
	case *cancel:
		if err := v.Cancel(ctx); err != nil {
			return err
		}
	case *complete:
		if err := v.Complete(ctx); err != nil {
			return err
		}
	case *newStart != "" && *newEnd != "":
		if err := v.Reschedule(ctx, models.RescheduleRequest{NewStartTime: *newStart, NewEndTime: *newEnd}); err != nil {
			return err
		}
	}

	return renderSessionDetail(v)
}

func (a *app) cmdAvailability(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("availability", flag.ExitOnError)
	declareStart := fs.String("start", "", "declare a slot: start time (RFC3339)")
	declareEnd := fs.String("end", "", "declare a slot: end time (RFC3339)")
	recurring := fs.Bool("recurring", false, "declare a weekly recurring slot")
	withdraw := fs.String("withdraw", "", "withdraw the slot with this id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := view.NewAvailabilityPlanner(view.AvailabilityPlannerParams{
		API: a.facade, Identity: a.session, Logger: a.logger,
	})
	v.Load(ctx)

	if *declareStart != "" && *declareEnd != "" {
		err := v.Declare(ctx, models.CreateAvailabilityRequest{
			TutorID:     a.session.Snapshot().UserID,
			StartTime:   *declareStart,
			EndTime:     *declareEnd,
			IsRecurring: *recurring,
		})
		if err != nil {
			return err
		}
		fmt.Println("slot declared")
	}
	if *withdraw != "" {
		if err := v.Withdraw(ctx, *withdraw); err != nil {
			return err
		}
		fmt.Printf("slot %s withdrawn\n", *withdraw)
	}

	return renderAvailability(v)
}

func (a *app) cmdUsers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	activate := fs.String("activate", "", "activate the account with this id")
	deactivate := fs.String("deactivate", "", "deactivate the account with this id")
	role := fs.String("role", "", "filter by role: STUDENT, TUTOR or COORDINATOR")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := view.NewUserDirectory(view.UserDirectoryParams{
		API: a.facade, Identity: a.session, Logger: a.logger,
	})
	v.Load(ctx)

	if *activate != "" {
		if err := v.Activate(ctx, *activate); err != nil {
			return err
		}
		fmt.Printf("user %s activated\n", *activate)
	}
	if *deactivate != "" {
		if err := v.Deactivate(ctx, *deactivate); err != nil {
			return err
		}
		fmt.Printf("user %s deactivated\n", *deactivate)
	}

	return renderUsers(v, models.Role(strings.ToUpper(*role)))
}

func (a *app) cmdReports(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reports", flag.ExitOnError)
	generate := fs.String("generate", "", "generate a report: SESSION_HISTORY, TUTOR_PERFORMANCE or STUDENT_ACTIVITY")
	criteria := fs.String("criteria", "", "criteria JSON passed through to the backend")
	seeds := fs.String("seed", "", "comma-separated report ids to probe")
	format := fs.String("export", "", "export the list: csv or pdf")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var seedIDs []string
	for _, id := range strings.Split(*seeds, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			seedIDs = append(seedIDs, trimmed)
		}
	}

	v := view.NewReportCenter(view.ReportCenterParams{
		API: a.facade, Identity: a.session, Logger: a.logger, SeedIDs: seedIDs,
	})
	v.Load(ctx)

	if *generate != "" {
		created, err := v.Generate(ctx, models.GenerateReportRequest{
			ReportType:  models.ReportType(strings.ToUpper(*generate)),
			Criteria:    *criteria,
			GeneratedBy: a.session.Snapshot().UserID,
		})
		if err != nil {
			return err
		}
		fmt.Printf("report %s generated\n", created.ReportID)
	}

	if err := renderReports(v); err != nil {
		return err
	}

	if *format != "" {
		return a.exportDataset(v.ExportDataset(), "reports", *format)
	}
	return nil
}

func (a *app) cmdResources(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("resources", flag.ExitOnError)
	query := fs.String("search", "", "filter by title or description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := view.NewResourceLibrary(view.ResourceLibraryParams{
		API: a.facade, Identity: a.session, Logger: a.logger,
	})
	v.Load(ctx)

	return renderResources(v, *query)
}

func (a *app) cmdForum(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("forum", flag.ExitOnError)
	title := fs.String("post", "", "open a new thread with this title")
	content := fs.String("content", "", "post or reply body")
	replyTo := fs.String("reply", "", "reply to the post with this id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := view.NewForum(view.ForumParams{
		API: a.facade, Identity: a.session, Logger: a.logger,
	})
	v.Load(ctx)

	authorID := a.session.Snapshot().UserID
	if *title != "" {
		err := v.Post(ctx, models.CreateForumPostRequest{AuthorID: authorID, Title: *title, Content: *content})
		if err != nil {
			return err
		}
	}
	if *replyTo != "" {
		_, err := v.Reply(ctx, models.CreateForumReplyRequest{PostID: *replyTo, AuthorID: authorID, Content: *content})
		if err != nil {
			return err
		}
		fmt.Println("reply posted")
	}

	return renderForum(v)
}

func (a *app) cmdMetrics() error {
	families, err := a.metrics.Gather()
	if err != nil {
		return err
	}
	return renderMetrics(families)
}

func (a *app) exportDataset(data export.Dataset, name, format string) error {
	var (
		rendered []byte
		err      error
	)
	switch strings.ToLower(format) {
	case "csv":
		rendered, err = export.NewCSVExporter().Render(data)
		name += ".csv"
	case "pdf":
		rendered, err = export.NewPDFExporter().Render(data)
		name += ".pdf"
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return err
	}
	path, err := export.WriteFile(a.cfg.Export.Dir, name, rendered)
	if err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}
