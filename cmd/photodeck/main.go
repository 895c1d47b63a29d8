package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/vytor/photodeck/internal/config"
	"github.com/vytor/photodeck/internal/db"
	"github.com/vytor/photodeck/internal/logger"
	"github.com/vytor/photodeck/internal/photos"
	"github.com/vytor/photodeck/internal/repository/sqlite"
	"github.com/vytor/photodeck/internal/session"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("photodeck starting")
	log.Debug("photo_base_url=%s", cfg.PhotoBaseURL)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("fetch_timeout_seconds=%d", cfg.FetchTimeoutSeconds)
	log.Debug("history_limit=%d", cfg.HistoryLimit)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	kv := sqlite.NewKVRepository(database.DB)
	answers := sqlite.NewAnswerRepository(database.DB)
	fetcher := photos.New(cfg.PhotoBaseURL, time.Duration(cfg.FetchTimeoutSeconds)*time.Second)

	sess := session.New(kv, fetcher,
		session.WithHistoryLimit(cfg.HistoryLimit),
		session.WithAnswerLog(answers),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sess.Initialize(ctx)

	fmt.Println("loading deck...")
	select {
	case <-sess.Ready():
	case <-ctx.Done():
		return
	}

	if !sess.Loaded() {
		fmt.Println("no cards could be loaded; check PHOTO_BASE_URL and try again")
		return
	}
	fmt.Printf("deck ready: %d cards\n", len(sess.Deck()))

	study(ctx, sess)

	if stats, err := sess.Stats(ctx); err == nil && stats.Total > 0 {
		fmt.Printf("all time: %d/%d correct (%.0f%%)\n", stats.Correct, stats.Total, stats.Accuracy*100)
	}
}

// study runs the interactive loop: show the photo, reveal the name on enter,
// then record whether the guess was right.
func study(ctx context.Context, sess *session.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	card := sess.Current()

	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Printf("\nphoto: %s\n", card.ImageSrc)
		fmt.Print("press enter to reveal (q to quit): ")
		if !scanner.Scan() {
			return
		}
		if strings.TrimSpace(scanner.Text()) == "q" {
			return
		}

		sess.Reveal()
		fmt.Printf("it's: %s\n", card.Name)
		fmt.Print("did you get it right? [y/n/q]: ")
		if !scanner.Scan() {
			return
		}

		switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
		case "y":
			card = sess.AnswerCorrect(ctx)
		case "n":
			card = sess.AnswerIncorrect(ctx)
		case "q":
			return
		default:
			// No answer recorded, show the same card again.
		}
	}
}
