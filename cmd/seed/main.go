// Command seed fills the database with demo publishers, interests and posts.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pressroom/internal/config"
	"pressroom/internal/database"
	"pressroom/internal/middleware"
	"pressroom/internal/seed"
)

func main() {
	numPublishers := flag.Int("publishers", 10, "Number of publishers to create besides the admin")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numInterests := flag.Int("interests", 12, "Number of interests to create")
	maxDays := flag.Int("days", 90, "How far back publish dates may reach")
	randSeed := flag.Int64("seed", 0, "Random seed; 0 picks one")
	shouldClean := flag.Bool("clean", false, "Delete existing data before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fail("failed to load configuration", err)
	}
	if cfg.IsProduction() {
		fail("refusing to seed", fmt.Errorf("APP_ENV is %q", cfg.Env))
	}

	db, err := database.Connect(cfg)
	if err != nil {
		fail("failed to connect to database", err)
	}

	res, err := seed.Seed(db, seed.Options{
		NumPublishers: *numPublishers,
		NumPosts:      *numPosts,
		NumInterests:  *numInterests,
		ShouldClean:   *shouldClean,
		MaxDays:       *maxDays,
		Seed:          *randSeed,
	})
	if err != nil {
		fail("seeding failed", err)
	}

	// Passwords go to stdout only, never to the structured log.
	fmt.Printf("admin login:     %s / %s\n", seed.AdminEmail, res.AdminPassword)
	fmt.Printf("publisher login: <any seeded email> / %s\n", res.PublisherPassword)
	fmt.Printf("created %d publishers, %d interests, %d posts (%d follow-ups)\n",
		res.Publishers, res.Interests, res.Posts, res.Followups)
}

func fail(msg string, err error) {
	middleware.Logger.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}
