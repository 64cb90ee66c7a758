package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/praveenchdev/followup-agent/internal/adapter/repository"
	domainrepo "github.com/praveenchdev/followup-agent/internal/domain/repositories"
	"github.com/praveenchdev/followup-agent/internal/infrastructure/database"
	"github.com/praveenchdev/followup-agent/internal/infrastructure/external/smtp"
	"github.com/praveenchdev/followup-agent/internal/usecase/directory"
	"github.com/praveenchdev/followup-agent/internal/usecase/escalation"
	"github.com/praveenchdev/followup-agent/internal/usecase/registry"
	"github.com/praveenchdev/followup-agent/internal/usecase/reminder"
	"github.com/praveenchdev/followup-agent/pkg/config"
)

// Options tunes one runner invocation. External cron sets these per
// schedule entry.
type Options struct {
	Timeout time.Duration `envconfig:"TIMEOUT" default:"5m"`
	DryRun  bool          `envconfig:"DRY_RUN" default:"false"`
}

// noopMail satisfies the mail port for dry runs
type noopMail struct{}

func (noopMail) Send(ctx context.Context, to, subject, body string) error { return nil }

func main() {
	mode := flag.String("run", "", "pass to execute: reminders or escalations")
	flag.Parse()

	if *mode != "reminders" && *mode != "escalations" {
		log.Fatalf("usage: runner -run reminders|escalations")
	}

	var opts Options
	if err := envconfig.Process("RUNNER", &opts); err != nil {
		log.Fatalf("Failed to parse runner options: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	var (
		taskRepo       domainrepo.TaskRepository
		meetingRepo    domainrepo.MeetingRepository
		userRepo       domainrepo.UserRepository
		escalationRepo domainrepo.EscalationRepository
	)

	if cfg.Database.Driver == "memory" {
		taskRepo = repository.NewMemoryTaskRepository()
		meetingRepo = repository.NewMemoryMeetingRepository()
		userRepo = repository.NewMemoryUserRepository()
		escalationRepo = repository.NewMemoryEscalationRepository()
	} else {
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		taskRepo = repository.NewTaskRepository(db)
		meetingRepo = repository.NewMeetingRepository(db)
		userRepo = repository.NewUserRepository(db)
		escalationRepo = repository.NewEscalationRepository(db)
	}

	var mail domainrepo.MailTransport = smtp.NewClient(&cfg.SMTP, logger)
	if opts.DryRun {
		log.Println("Dry run: no mail will be sent")
		mail = noopMail{}
	}

	dirService := directory.NewService(userRepo, nil, logger)
	registryService := registry.NewService(taskRepo, meetingRepo, &cfg.Followup, logger)

	now := time.Now()
	var report interface{}

	switch *mode {
	case "reminders":
		scheduler := reminder.NewScheduler(registryService, dirService, mail, &cfg.Followup, logger)
		report, err = scheduler.Run(ctx, now)
	case "escalations":
		svc := escalation.NewService(registryService, escalationRepo, mail, &cfg.Followup, logger)
		report, err = svc.Run(ctx, now)
	}
	if err != nil {
		log.Fatalf("Pass failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
}
