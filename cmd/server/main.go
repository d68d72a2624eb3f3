package main

import (
	"context"
	"flag"
	"log/syslog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/flockchat/flock"
	"github.com/flockchat/flock/avatar"
	"github.com/flockchat/flock/inmem"
	"github.com/flockchat/flock/persistent"
	"github.com/flockchat/flock/pgdb"
	"github.com/flockchat/flock/transport/rest"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/sirupsen/logrus"
	logrusys "github.com/sirupsen/logrus/hooks/syslog"
	"github.com/tidwall/buntdb"
	"github.com/uptrace/bun"
	_ "github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

func listenAndServe(
	ctx context.Context,
	bdb *buntdb.DB,
	db *bun.DB,
	imagesDir string,
	debug bool,
) func() error {
	var userStore flock.UserStore
	var channelStore flock.ChannelStore
	if db != nil {
		userStore = &persistent.UserStore{DB: db}
		channelStore = &persistent.ChannelStore{DB: db}
	} else {
		logrus.Warningln("POSTGRES_DSN not set - using in-memory stores.")
		users := inmem.NewUserStore()
		channels := inmem.NewChannelStore()
		userStore = &users
		channelStore = &channels
	}
	sessionStore := &persistent.SessionStore{Buntdb: bdb}

	originalDir := filepath.Join(imagesDir, "original")
	croppedDir := filepath.Join(imagesDir, "cropped")
	for _, dir := range []string{originalDir, croppedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logrus.WithError(err).WithField("dir", dir).Fatalln("Could not create images dir.")
		}
	}
	avatarService := &avatar.Service{
		Users:       userStore,
		OriginalDir: originalDir,
		CroppedDir:  croppedDir,
	}

	channelController := rest.ChannelController{Store: channelStore}
	profileController := rest.ProfileController{Users: userStore, Avatar: avatarService}

	server := fiber.New()
	server.Use(rest.LogHandler())

	api := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: rest.ErrorHandler,
	})

	allowOrigins := "https://flockchat.pl"
	if debug {
		allowOrigins += ", http://test.flockchat.pl:3000"
	}
	api.Use(cors.New(cors.Config{AllowOrigins: allowOrigins}))

	requestAuthorizer := rest.RequestAuthorizer(sessionStore, userStore)
	api.Get("/status", monitor.New())
	channelController.InstallTo(requestAuthorizer, api)
	profileController.InstallTo(requestAuthorizer, api)

	server.Mount("/api/", api)

	// stored avatar paths resolve against this route
	server.Static("/imgurl/", croppedDir, fiber.Static{Browse: false})

	server.Use(rest.NotFoundHandler)

	var addr string
	if debug {
		addr = "127.0.0.1:2137"
	} else {
		addr = ":2137"
	}
	go server.Listen(addr)

	return func() error {
		return server.Shutdown()
	}
}

func setupLogger(verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.Stamp,
		FullTimestamp:   true,
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	syslogHook, err := logrusys.NewSyslogHook("", "", syslog.LOG_USER, "flock_backend")
	if err != nil {
		logrus.WithError(err).Fatalln("Could not create syslog hook.")
		return
	}
	logrus.AddHook(syslogHook)
}

func awaitInterruption() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}

func main() {
	flag.Parse()
	debug := os.Getenv("DEBUG") == "true"
	setupLogger(debug)
	logrus.Infoln("Starting backend.")

	bdb, err := buntdb.Open("sessions.db")
	if err != nil {
		logrus.WithError(err).Fatalln("Could not open buntdb.")
	}
	defer bdb.Close()

	var db *bun.DB
	pgDsn := os.Getenv("POSTGRES_DSN")
	if pgDsn != "" {
		logrus.Infoln("Opening database.")
		db = pgdb.Open(context.Background(), pgDsn)
		if debug {
			db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
		}
		defer db.DB.Close()
		defer db.Close()
	}

	imagesDir := os.Getenv("FLOCK_IMAGES_DIR")
	if imagesDir == "" {
		imagesDir = "images"
	}

	logrus.Infoln("Starting listening... To shut down use ^C")
	shutdown := listenAndServe(context.Background(), bdb, db, imagesDir, debug)

	awaitInterruption()

	logrus.Infoln("Shutting down...")
	err = shutdown()
	if err != nil {
		logrus.WithError(err).Warningln("Fiber shutdown failed.")
	}
	logrus.Exit(0)
}
