package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gravadigital/wedding-api/internal/config"
	"github.com/gravadigital/wedding-api/internal/logger"
	"github.com/gravadigital/wedding-api/internal/services"
	"github.com/gravadigital/wedding-api/internal/storage"
)

const usage = `Usage: rsvpctl delete <id|email|guest name>

Deletes RSVP submissions. A UUID deletes that submission; any other value
deletes every submission with that email, then every one with that guest name.`

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Server.LogLevel)
	log := logger.Command("rsvpctl")

	timeout := flag.Duration("timeout", 30*time.Second, "Overall timeout")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 || args[0] != "delete" {
		flag.Usage()
		os.Exit(2)
	}
	target := strings.Join(args[1:], " ")

	factory, err := storage.FromConfig(cfg)
	if err != nil {
		log.Error("Invalid storage driver", "error", err)
		os.Exit(1)
	}
	repos, err := factory.CreateContainer(cfg)
	if err != nil {
		log.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer repos.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := services.NewMaintenanceService(repos.RSVPs()).PurgeRSVP(ctx, target)
	if err != nil {
		log.Error("Delete failed", "target", target, "error", err)
		os.Exit(1)
	}

	if result.Count() == 0 {
		fmt.Printf("No RSVP entries found for %q\n", target)
		return
	}

	for _, sub := range result.Deleted {
		if result.ByID {
			fmt.Printf("Deleted RSVP: id=%s\n", sub.ID)
			continue
		}
		fmt.Printf("Deleted RSVP: id=%s, email=%s, password=%s, guest_name=%s\n",
			sub.ID, sub.Email, sub.Password, sub.GuestName)
	}
}
