// golfctl is a command-line front end for the club's hosted backend:
// account management, profile edits, round recording, and the pro-shop
// catalog.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/fairway-club/clubhouse-api/internal/backend"
	"github.com/fairway-club/clubhouse-api/internal/config"
	"github.com/fairway-club/clubhouse-api/internal/logging"
	"github.com/fairway-club/clubhouse-api/internal/metrics"
	"github.com/fairway-club/clubhouse-api/internal/session"

	"github.com/pkg/errors"
)

const appVersion = "dev"

const usageText = `usage: golfctl [-config file] <command>

commands:
  signup      -email -password -name [-federation] [-id-photo file]
  signin      -email -password
  signout
  profile     get | update [-name] [-federation] [-email]
  stats
  rounds      list | save -course <name> -scores 1=4,2=5,...
  shop        list | add -name -price [-brand] [-category] [-image-url] [-stock]
  upload-id   <file>
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "golfctl:", err)
		os.Exit(1)
	}
}

func run() error {
	root := flag.NewFlagSet("golfctl", flag.ExitOnError)
	configPath := root.String("config", "", "path to a yaml config file")
	root.Usage = func() { fmt.Fprint(os.Stderr, usageText) }
	if err := root.Parse(os.Args[1:]); err != nil {
		return err
	}
	if root.NArg() == 0 {
		root.Usage()
		return errors.New("a command is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logCfg := cfg.Log
	logCfg.Service = "golfctl"
	logCfg.Version = appVersion
	logger := logging.NewLogger(logCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder, promHandler, shutdown, err := metrics.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return errors.Wrap(err, "metrics setup")
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logging.Warn(logger, "metrics shutdown failed", "error", err)
		}
	}()

	// The scrape endpoint lives for the duration of the command.
	if promHandler != nil && cfg.Telemetry.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promHandler)
		metricsSrv := &http.Server{Addr: cfg.Telemetry.MetricsAddr, Handler: mux}
		go func() {
			if serveErr := metricsSrv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				logging.Warn(logger, "metrics listener failed", "error", serveErr)
			}
		}()
		defer func() {
			if err := metricsSrv.Shutdown(context.Background()); err != nil {
				logging.Warn(logger, "metrics listener shutdown failed", "error", err)
			}
		}()
	}

	sessionPath, err := cfg.SessionPath()
	if err != nil {
		return err
	}
	store := session.NewFileStore(sessionPath)

	client := backend.NewClient(backend.Config{
		BaseURL:    cfg.Backend.BaseURL,
		AnonKey:    cfg.Backend.AnonKey,
		HTTPClient: &http.Client{Timeout: cfg.Backend.Timeout},
		Sessions:   store,
		Logger:     logger,
		Metrics:    recorder,
	})

	args := root.Args()
	switch args[0] {
	case "signup":
		return runSignUp(ctx, client, args[1:])
	case "signin":
		return runSignIn(ctx, client, args[1:])
	case "signout":
		return client.SignOut(ctx)
	case "profile":
		return runProfile(ctx, client, args[1:])
	case "stats":
		return runStats(ctx, client)
	case "rounds":
		return runRounds(ctx, client, args[1:])
	case "shop":
		return runShop(ctx, client, args[1:])
	case "upload-id":
		return runUploadID(ctx, client, args[1:])
	default:
		root.Usage()
		return errors.Errorf("unknown command %q", args[0])
	}
}

func runSignUp(ctx context.Context, client *backend.Client, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "full name")
	federation := fs.String("federation", "", "federation code")
	idPhoto := fs.String("id-photo", "", "path to a jpeg id document")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := backend.SignUpInput{
		Email:          *email,
		Password:       *password,
		FullName:       *name,
		FederationCode: *federation,
	}
	if *idPhoto != "" {
		data, err := os.ReadFile(*idPhoto)
		if err != nil {
			return errors.Wrap(err, "read id photo")
		}
		input.IDDocument = data
	}

	if err := client.SignUp(ctx, input); err != nil {
		return err
	}
	fmt.Println("account created, sign in to continue")
	return nil
}

func runSignIn(ctx context.Context, client *backend.Client, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := client.SignIn(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Println("signed in as", sess.UserID)
	return nil
}

func runProfile(ctx context.Context, client *backend.Client, args []string) error {
	if len(args) == 0 {
		return errors.New("profile requires get or update")
	}
	switch args[0] {
	case "get":
		profile, err := client.FetchProfile(ctx)
		if err != nil {
			return err
		}
		return printJSON(profile)
	case "update":
		fs := flag.NewFlagSet("profile update", flag.ExitOnError)
		name := fs.String("name", "", "full name")
		federation := fs.String("federation", "", "federation code")
		email := fs.String("email", "", "contact email")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		userID, err := currentUserID(client)
		if err != nil {
			return err
		}
		return client.UpdateProfile(ctx, userID, backend.UpdateProfileInput{
			FullName:       *name,
			FederationCode: *federation,
			Email:          *email,
		})
	default:
		return errors.Errorf("unknown profile subcommand %q", args[0])
	}
}

func runStats(ctx context.Context, client *backend.Client) error {
	userID, err := currentUserID(client)
	if err != nil {
		return err
	}
	stats, err := client.FetchPlayerStats(ctx, userID)
	if err != nil {
		return err
	}
	if stats == nil {
		fmt.Println("no rounds recorded yet")
		return nil
	}
	return printJSON(stats)
}

func runRounds(ctx context.Context, client *backend.Client, args []string) error {
	if len(args) == 0 {
		return errors.New("rounds requires list or save")
	}
	switch args[0] {
	case "list":
		userID, err := currentUserID(client)
		if err != nil {
			return err
		}
		rounds, err := client.FetchRounds(ctx, userID)
		if err != nil {
			return err
		}
		return printJSON(rounds)
	case "save":
		fs := flag.NewFlagSet("rounds save", flag.ExitOnError)
		course := fs.String("course", "", "course name")
		scoresArg := fs.String("scores", "", "per-hole scores, e.g. 1=4,2=5")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		scores, err := parseScores(*scoresArg)
		if err != nil {
			return err
		}
		userID, err := currentUserID(client)
		if err != nil {
			return err
		}
		if err := client.SaveRound(ctx, userID, *course, scores); err != nil {
			if saveErr, ok := backend.AsRoundSaveError(err); ok {
				return errors.Errorf("round %s was created but its hole scores were not saved: %v",
					saveErr.RoundID, saveErr.Err)
			}
			return err
		}
		fmt.Println("round saved")
		return nil
	default:
		return errors.Errorf("unknown rounds subcommand %q", args[0])
	}
}

func runShop(ctx context.Context, client *backend.Client, args []string) error {
	if len(args) == 0 {
		return errors.New("shop requires list or add")
	}
	switch args[0] {
	case "list":
		products, err := client.FetchProducts(ctx)
		if err != nil {
			return err
		}
		return printJSON(products)
	case "add":
		fs := flag.NewFlagSet("shop add", flag.ExitOnError)
		name := fs.String("name", "", "product name")
		price := fs.Float64("price", 0, "price")
		brand := fs.String("brand", "", "brand")
		category := fs.String("category", "", "category")
		imageURL := fs.String("image-url", "", "image url")
		stock := fs.Int("stock", 0, "stock quantity")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		// Catalog writes are gated on premium membership here, not in
		// the client.
		profile, err := client.FetchProfile(ctx)
		if err != nil {
			return err
		}
		if !profile.Premium {
			return errors.New("adding products requires a premium membership")
		}

		return client.SaveProduct(ctx, backend.SaveProductInput{
			Name:          *name,
			Price:         *price,
			Brand:         *brand,
			Category:      *category,
			ImageURL:      *imageURL,
			StockQuantity: *stock,
		})
	default:
		return errors.Errorf("unknown shop subcommand %q", args[0])
	}
}

func runUploadID(ctx context.Context, client *backend.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("upload-id requires exactly one file argument")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrap(err, "read id document")
	}
	userID, err := currentUserID(client)
	if err != nil {
		return err
	}
	path, err := client.UploadIDDocument(ctx, userID, data)
	if err != nil {
		return err
	}
	fmt.Println("uploaded", path)
	return nil
}

func currentUserID(client *backend.Client) (string, error) {
	sess, ok := client.Sessions().Current()
	if !ok {
		return "", errors.New("no active session, sign in first")
	}
	return sess.UserID, nil
}

// parseScores turns "1=4,2=5" into a hole-to-score mapping. Range
// checks are left to the client.
func parseScores(raw string) (map[int]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("-scores is required")
	}
	scores := make(map[int]int)
	for _, pair := range strings.Split(raw, ",") {
		hole, score, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return nil, errors.Errorf("bad score entry %q, want hole=score", pair)
		}
		h, err := strconv.Atoi(hole)
		if err != nil {
			return nil, errors.Errorf("bad hole number %q", hole)
		}
		s, err := strconv.Atoi(score)
		if err != nil {
			return nil, errors.Errorf("bad score %q", score)
		}
		if _, dup := scores[h]; dup {
			return nil, errors.Errorf("hole %d given twice", h)
		}
		scores[h] = s
	}
	return scores, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
