package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/simp-lee/waystar/internal/app"
	"github.com/simp-lee/waystar/internal/config"
	"github.com/simp-lee/waystar/internal/session"
	"github.com/simp-lee/waystar/internal/tracker"
)

const usage = `usage: waystar [-config path] <command> [args]

commands:
  migrate                    move a legacy local token into the cookie jar
  login -u name -p password  sign in (add -remember to keep the session)
  logout                     sign out
  whoami                     show the signed-in account
  favorites                  list favorited attractions
  toggle <attractionId>      favorite or unfavorite an attraction
  track <attractionId>       time a visit until Ctrl+C
  slideshow                  show the home page carousel
`

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal("failed to create app: ", err)
	}

	runErr := run(ctx, a, flag.Arg(0), flag.Args()[1:])
	if err := a.Close(); err != nil {
		log.Print("shutdown error: ", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}

func run(ctx context.Context, a *app.App, cmd string, args []string) error {
	switch cmd {
	case "migrate":
		moved, err := a.MigrateToken(ctx)
		if err != nil {
			return err
		}
		if moved {
			fmt.Println("legacy token migrated")
		} else {
			fmt.Println("nothing to migrate")
		}
		return nil

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		username := fs.String("u", "", "username")
		password := fs.String("p", "", "password")
		remember := fs.Bool("remember", false, "keep the session after the browser closes")
		if err := fs.Parse(args); err != nil {
			return err
		}
		who, err := a.Login(ctx, session.Credentials{Username: *username, Password: *password, RememberMe: *remember})
		if err != nil {
			return err
		}
		fmt.Printf("signed in as %s\n", who.Username)
		return nil

	case "logout":
		if err := a.Logout(ctx); err != nil {
			return fmt.Errorf("signed out locally, backend logout failed: %w", err)
		}
		fmt.Println("signed out")
		return nil

	case "whoami":
		who, err := a.WhoAmI(ctx)
		if err != nil {
			return err
		}
		printIdentity(who)
		return nil

	case "favorites":
		cards, err := a.FavoriteCards(ctx)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			fmt.Println("no favorites yet")
		}
		for _, c := range cards {
			fmt.Printf("%6d  %s  %s\n", c.AttractionID, c.Name, c.Location)
		}
		return nil

	case "toggle":
		id, err := attractionArg(args)
		if err != nil {
			return err
		}
		collected, err := a.ToggleFavorite(ctx, id)
		if err != nil {
			return err
		}
		if collected {
			fmt.Printf("attraction %d added to favorites\n", id)
		} else {
			fmt.Printf("attraction %d removed from favorites\n", id)
		}
		return nil

	case "track":
		id, err := attractionArg(args)
		if err != nil {
			return err
		}
		return a.Track(id, tracker.DefaultDeviceInfo())

	case "slideshow":
		items, err := a.Slideshows(ctx)
		if err != nil {
			return err
		}
		for _, s := range items {
			fmt.Printf("%4d  %s  %s\n", s.SlideshowID, s.Title, s.ImageURL)
		}
		return nil

	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func attractionArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one attraction id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid attraction id %q", args[0])
	}
	return id, nil
}

func printIdentity(who *app.Identity) {
	fmt.Printf("id:       %d\n", who.ID)
	fmt.Printf("username: %s\n", who.Username)
	if who.Name != "" {
		fmt.Printf("name:     %s\n", who.Name)
	}
	if who.Email != "" {
		fmt.Printf("email:    %s\n", who.Email)
	}
	fmt.Printf("avatar:   %s\n", who.Avatar)
	if len(who.Permissions) > 0 {
		fmt.Printf("perms:    %s\n", strings.Join(who.Permissions, ", "))
	}
	fmt.Printf("token:    expires in %s\n", who.TokenRemaining.Round(time.Second))
}
