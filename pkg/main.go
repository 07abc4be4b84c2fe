package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	pkg "github.com/pingup/network/pkg/internal"
	"github.com/pingup/network/pkg/internal/database"
	"github.com/pingup/network/pkg/internal/http"
	"github.com/pingup/network/pkg/internal/http/api"
	"github.com/pingup/network/pkg/internal/services"
	"github.com/pingup/network/pkg/internal/uploader"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" ____  _             _   _\n|  _ \\(_)_ __   __ _| | | |_ __\n| |_) | | '_ \\ / _` | | | | '_ \\\n|  __/| | | | | (_| | |_| | |_) |\n|_|   |_|_| |_|\\__, |\\___/| .__/\n               |___/      |_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("PingUp.Network"), pkg.AppVersion)
	fmt.Printf("The social feed service of PingUp\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("pingup")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("bind", ":5000")
	viper.SetDefault("database.driver", database.DriverPostgres)
	viper.SetDefault("stories.ttl", services.DefaultStoryTTL)
	viper.SetDefault("cron.cleanup", "@every 60m")
	viper.SetDefault("cron.reconcile", "@every 6h")
	viper.SetDefault("uploads.provider", uploader.ProviderCloudinary)
	viper.SetDefault("uploads.folder", services.DefaultPostFolder)

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Connect to database
	db, err := database.NewGorm()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(db); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Configure blob storage
	up, err := uploader.NewFromSettings()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when configuring uploads.")
	}

	accounts := services.NewAccountService(db)
	stories := services.NewStoryService(db, accounts, viper.GetDuration("stories.ttl"))
	reactions := services.NewReactionService(db)
	handler := &api.Handler{
		Accounts:  accounts,
		Posts:     services.NewPostService(db, accounts, up, viper.GetString("uploads.folder")),
		Stories:   stories,
		Reactions: reactions,
		Comments:  services.NewCommentService(db),
		Friends:   services.NewFriendService(db),
		Uploader:  up,
	}

	// Configure timed tasks
	janitor := services.NewJanitor(stories, reactions)
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	if _, err := quartz.AddFunc(viper.GetString("cron.cleanup"), janitor.DoAutoDatabaseCleanup); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when scheduling story cleanup.")
	}
	if _, err := quartz.AddFunc(viper.GetString("cron.reconcile"), janitor.DoReactionReconcile); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when scheduling reaction reconcile.")
	}
	quartz.Start()

	// Server
	server := http.NewServer(handler)
	go server.Listen()
	log.Info().Str("bind", viper.GetString("bind")).Msg("Server is running.")

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-quartz.Stop().Done()
	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("An error occurred when shutting down server...")
	}
	if raw, err := db.DB(); err == nil {
		_ = raw.Close()
	}
}
