// basaajctl exercises the Basaaj client SDK from the command line: login via
// phone/OTP, nearby-deal discovery, seller deal management and reactions.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/basaaj/basaaj-go/internal/api"
	"github.com/basaaj/basaaj-go/internal/auth"
	"github.com/basaaj/basaaj-go/internal/config"
	"github.com/basaaj/basaaj-go/internal/deals"
	"github.com/basaaj/basaaj-go/internal/formconfig"
	"github.com/basaaj/basaaj-go/internal/location"
	"github.com/basaaj/basaaj-go/internal/models"
	"github.com/basaaj/basaaj-go/internal/reactions"
	"github.com/basaaj/basaaj-go/internal/store"
	"github.com/basaaj/basaaj-go/internal/users"
	"github.com/basaaj/basaaj-go/internal/validator"
)

type app struct {
	cfg       *config.Config
	state     *store.Store
	auth      *auth.Service
	flow      *auth.Flow
	deals     *deals.Service
	users     *users.Service
	forms     *formconfig.Service
	locations *location.Provider
	engine    *reactions.Engine
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.StatePath)
	if err != nil {
		slog.Error("Critical error opening local state", "error", err)
		os.Exit(1)
	}

	client := api.New(cfg.BaseURL, st, cfg.HTTPTimeout)
	v := validator.New()
	authSvc := auth.NewService(client)
	flow := auth.NewFlow(authSvc, v)
	dealSvc := deals.NewService(client, v, st)

	a := &app{
		cfg:       cfg,
		state:     st,
		auth:      authSvc,
		flow:      flow,
		deals:     dealSvc,
		users:     users.New(client),
		forms:     formconfig.New(client),
		locations: location.NewProvider(location.NewHTTPGeocoder(cfg.MapsBaseURL, cfg.MapsAPIKey), location.StaticGeolocator{Lat: cfg.DefaultLat, Lng: cfg.DefaultLng}),
		engine:    reactions.NewEngine(reactions.NewSessionCache(), dealSvc, flow, nil),
	}

	ctx := context.Background()
	a.flow.Init(ctx)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var cmdErr error
	switch os.Args[1] {
	case "login":
		cmdErr = a.login(ctx, os.Args[2:])
	case "logout":
		a.flow.Logout()
		fmt.Println("logged out")
	case "whoami":
		cmdErr = a.whoami()
	case "discover":
		cmdErr = a.discover(ctx, os.Args[2:])
	case "deals":
		cmdErr = a.myDeals(ctx)
	case "stats":
		cmdErr = a.stats(ctx)
	case "react":
		cmdErr = a.react(ctx, os.Args[2:])
	case "delete":
		cmdErr = a.deleteDeal(ctx, os.Args[2:])
	case "categories":
		cmdErr = a.categories(ctx)
	case "addresses":
		cmdErr = a.addresses(ctx)
	default:
		usage()
		os.Exit(2)
	}

	if cmdErr != nil {
		slog.Error("Command failed", "command", os.Args[1], "error", api.Message(cmdErr))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: basaajctl <command> [args]

commands:
  login <phone>          request an OTP, then verify it interactively
  logout                 clear stored credentials
  whoami                 show the logged-in profile
  discover [query]       list nearby deals
  deals                  list my deals
  stats                  show my deal counters
  react <dealID> <LIKE|DISLIKE>
  delete <dealID>
  categories             list category groups
  addresses              list saved addresses`)
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: basaajctl login <phone>")
	}
	a.flow.OpenLogin("")
	if err := a.flow.SubmitPhone(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("OTP sent to %s. Enter code: ", a.flow.Mobile())
	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	if err := a.flow.SubmitOTP(ctx, strings.TrimSpace(code)); err != nil {
		return err
	}
	switch a.flow.State() {
	case auth.StateProfileSetup:
		fmt.Println("verified; complete your seller profile to finish onboarding")
	case auth.StateLoggedIn:
		if u := a.flow.User(); u != nil {
			fmt.Printf("logged in as %s\n", u.BusinessName)
		}
	}
	return nil
}

func (a *app) whoami() error {
	u := a.flow.User()
	if u == nil {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s (%s) %s\n", u.BusinessName, u.Phone, u.Email)
	return nil
}

func (a *app) discover(ctx context.Context, args []string) error {
	loc := a.currentLocation()
	params := models.DiscoverParams{
		Latitude:  loc.Lat,
		Longitude: loc.Lng,
		Size:      20,
		Sort:      "distance",
	}
	if len(args) > 0 {
		params.Query = strings.Join(args, " ")
	}
	page, err := a.deals.Discover(ctx, params)
	if err != nil {
		return err
	}
	fmt.Printf("%d deals near %s\n", page.TotalElements, loc.DisplayName)
	for _, d := range page.Content {
		view := a.engine.NewView(d.ID, d.ReactionSnapshot())
		st := view.State()
		fmt.Printf("  %-36s  %-40s  %.1fkm  +%d/-%d\n", d.ID, d.Title, d.DistanceKm, st.LikeCount, st.DislikeCount)
	}
	return nil
}

// currentLocation waits briefly for detection and falls back to the first
// popular city so discovery always has a coordinate.
func (a *app) currentLocation() models.LocationValue {
	a.locations.DetectCurrentLocation()
	deadline := time.Now().Add(3 * time.Second)
	for a.locations.Loading() && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if loc := a.locations.Current(); loc != nil {
		return *loc
	}
	if msg := a.locations.ErrorMessage(); msg != "" {
		slog.Warn("Location detection failed", "message", msg)
	}
	return location.PopularCities()[0]
}

func (a *app) myDeals(ctx context.Context) error {
	page, err := a.deals.MyDeals(ctx, "", "", 0, 20)
	if err != nil {
		return err
	}
	for _, d := range page.Content {
		fmt.Printf("  %-36s  %-40s  %s\n", d.ID, d.Title, d.State)
	}
	return nil
}

func (a *app) stats(ctx context.Context) error {
	st, err := a.deals.MyStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("deals: %d (active %d)  views: %d  redemptions: %d  likes: %d\n",
		st.TotalDeals, st.ActiveDeals, st.TotalViews, st.TotalRedemptions, st.TotalLikes)
	return nil
}

func (a *app) react(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: basaajctl react <dealID> <LIKE|DISLIKE>")
	}
	typ := models.ReactionType(strings.ToUpper(args[1]))
	if typ != models.ReactionLike && typ != models.ReactionDislike {
		return fmt.Errorf("reaction must be LIKE or DISLIKE")
	}
	seed, err := a.deals.ReactionState(ctx, args[0])
	if err != nil {
		return err
	}
	view := a.engine.NewView(args[0], seed)
	if err := view.Toggle(ctx, typ); err != nil {
		return err
	}
	st := view.State()
	fmt.Printf("reaction=%s likes=%d dislikes=%d\n", orNone(st.UserReaction), st.LikeCount, st.DislikeCount)
	return nil
}

func orNone(t models.ReactionType) string {
	if t == models.ReactionNone {
		return "none"
	}
	return string(t)
}

func (a *app) deleteDeal(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: basaajctl delete <dealID>")
	}
	if err := a.deals.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("deleted")
	return nil
}

func (a *app) categories(ctx context.Context) error {
	groups, err := a.forms.CategoryGroups(ctx)
	if err != nil {
		return err
	}
	for _, g := range groups {
		fmt.Println(g.Label)
		for _, sub := range g.Subcategories {
			fmt.Printf("  %s (%s)\n", sub.Name, sub.Code)
		}
	}
	return nil
}

func (a *app) addresses(ctx context.Context) error {
	addrs, err := a.users.SavedAddresses(ctx)
	if err != nil {
		if api.IsRecoverable(err) {
			fmt.Println("no saved addresses available")
			return nil
		}
		return err
	}
	for _, addr := range addrs {
		def := ""
		if addr.IsDefault {
			def = " (default)"
		}
		fmt.Printf("  %-12s %s%s\n", addr.Label, addr.Address, def)
	}
	return nil
}
