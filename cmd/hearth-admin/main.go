// Package main is the entry point for the Hearth admin CLI.
// It operates directly on the configured storage backend, so the first
// administrator account can be created before the API is reachable.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/cache/memory"
	"github.com/prn-tf/hearth/internal/config"
	"github.com/prn-tf/hearth/internal/credentials"
	"github.com/prn-tf/hearth/internal/service"
	"github.com/prn-tf/hearth/internal/storage"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("Hearth Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "account":
		if err := runAccount(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runAccount(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("account requires a subcommand: create, list or promote")
	}

	switch args[0] {
	case "create":
		return runAccountCreate(args[1:])
	case "list":
		return runAccountList(args[1:])
	case "promote":
		return runAccountPromote(args[1:])
	default:
		return fmt.Errorf("unknown account subcommand: %s", args[0])
	}
}

func runAccountCreate(args []string) error {
	fs := flag.NewFlagSet("account create", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	admin := fs.Bool("admin", false, "grant admin rights")
	if err := fs.Parse(args); err != nil {
		return err
	}

	facade, cleanup, err := openFacade(*configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	account, err := facade.CreateAccount(context.Background(), map[string]any{
		"first_name": *firstName,
		"last_name":  *lastName,
		"email":      *email,
		"password":   *password,
		"is_admin":   *admin,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Account created: %s (%s)\n", account.ID, account.Email)
	if account.IsAdmin {
		fmt.Println("Admin rights granted.")
	}
	return nil
}

func runAccountList(args []string) error {
	fs := flag.NewFlagSet("account list", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	facade, cleanup, err := openFacade(*configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	accounts, err := facade.ListAccounts(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tADMIN\tCREATED")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%t\t%s\n",
			a.ID, a.Email, a.FirstName, a.LastName, a.IsAdmin,
			a.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func runAccountPromote(args []string) error {
	fs := flag.NewFlagSet("account promote", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	id := fs.String("id", "", "account id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	facade, cleanup, err := openFacade(*configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	account, err := facade.UpdateAccount(context.Background(), *id, map[string]any{
		"is_admin": true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Account %s (%s) is now an admin.\n", account.ID, account.Email)
	return nil
}

// openFacade opens the configured backend and builds a facade over it.
// The CLI logs errors only, to keep command output clean.
func openFacade(configPath string) (*service.Facade, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.ErrorLevel)

	backend, err := storage.Open(context.Background(), cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	cache := memory.NewCache()
	creds := credentials.NewManager(cfg.Auth.BcryptCost)
	facade := service.NewFacade(service.Repositories{
		Accounts:  backend.Accounts,
		Listings:  backend.Listings,
		Amenities: backend.Amenities,
		Reviews:   backend.Reviews,
		Tx:        backend.Tx,
	}, creds, cache, logger)

	cleanup := func() {
		cache.Stop()
		_ = backend.Close()
	}
	return facade, cleanup, nil
}

func printUsage() {
	fmt.Println(`Hearth Admin CLI

Usage:
  hearth-admin <command> [arguments]

Commands:
  account create    Create an account (use -admin for the first administrator)
  account list      List all accounts
  account promote   Grant admin rights to an account
  version           Print version information
  help              Show this help message

Examples:
  hearth-admin account create -email admin@example.com -first-name Ada -last-name Lovelace -password 'S3cure-Passw0rd!' -admin
  hearth-admin account list
  hearth-admin account promote -id <uuid>

Use "hearth-admin <command> -h" for more information about a command.`)
}
