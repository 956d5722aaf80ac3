package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/XploitFox/private-navigation-system/internal/client"
	"github.com/XploitFox/private-navigation-system/internal/core/domain"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var errUsage = errors.New("usage: navctl [-url URL] [-user NAME] health|whoami|list [query]|export|import FILE")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("navctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	baseURL := fs.String("url", envOr("NAVCTL_URL", "http://localhost:3000"), "API base url")
	username := fs.String("user", envOr("NAVCTL_USER", "admin"), "username")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return errUsage
	}

	c, err := client.New(*baseURL)
	if err != nil {
		return err
	}

	cmd, rest := rest[0], rest[1:]
	if cmd == "health" {
		if err := c.Health(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "ok")
		return nil
	}

	if err := login(ctx, c, *username, stderr); err != nil {
		return err
	}

	switch cmd {
	case "whoami":
		user, err := c.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, user.Username)
		return nil

	case "list":
		categories, err := c.Navigations(ctx, strings.Join(rest, " "))
		if err != nil {
			return err
		}
		printCategories(stdout, categories)
		return nil

	case "export":
		categories, err := c.Navigations(ctx, "")
		if err != nil {
			return err
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"categories": categories})

	case "import":
		if len(rest) != 1 {
			return errUsage
		}
		categories, err := readCategories(rest[0])
		if err != nil {
			return err
		}
		if err := c.SaveNavigations(ctx, categories); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "imported %d categories\n", len(categories))
		return nil

	default:
		return errUsage
	}
}

func login(ctx context.Context, c *client.Client, username string, prompt io.Writer) error {
	password := os.Getenv("NAVCTL_PASSWORD")
	if password == "" {
		fmt.Fprint(prompt, "Password: ")
		pw, err := readPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = string(pw)
	}

	if _, err := c.Login(ctx, username, password); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("invalid credentials")
		}
		return err
	}
	return nil
}

// readCategories accepts either {"categories":[...]} as written by export or a bare array.
func readCategories(path string) ([]domain.NavigationCategory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Categories json.RawMessage `json:"categories"`
	}
	raw := json.RawMessage(data)
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Categories != nil {
		raw = wrapped.Categories
	}

	categories, err := domain.DecodeCategories(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return categories, nil
}

func printCategories(w io.Writer, categories []domain.NavigationCategory) {
	if len(categories) == 0 {
		fmt.Fprintln(w, "(no navigations)")
		return
	}
	for _, c := range categories {
		fmt.Fprintf(w, "%s\n", c.Name)
		for _, it := range c.Items {
			fmt.Fprintf(w, "  %-24s %s\n", it.Title, it.URL)
		}
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
