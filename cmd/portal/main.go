package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"advocate-portal-client/internal/bootstrap"
	"advocate-portal-client/internal/config"
	"advocate-portal-client/internal/controller"
	"advocate-portal-client/internal/entity"
	"advocate-portal-client/internal/pkg/logger"
	"advocate-portal-client/internal/service"

	"github.com/fatih/color"
)

func main() {
	serverFlag := flag.String("server", "", "Override portal base URL (e.g. https://api.example.com)")
	flag.Parse()

	cfg := config.Load()
	if *serverFlag != "" {
		cfg.Portal.BaseURL = strings.TrimRight(*serverFlag, "/")
	}

	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	container := bootstrap.NewContainer(cfg, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := container.Start(ctx); err != nil {
		color.Red("Failed to start event subscriptions: %v", err)
		os.Exit(1)
	}
	defer container.Close()

	container.SessionService.Bootstrap()

	color.Cyan("Advocate Client Portal (%s)", cfg.Portal.BaseURL)
	runShell(ctx, container)
}

func runShell(ctx context.Context, c *bootstrap.Container) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if !c.SessionService.Active() {
			if !loginPrompt(ctx, c, scanner) {
				return
			}
			continue
		}

		cred, _ := c.SessionService.Credential()
		fmt.Printf("[%s | %s] > ", cred.Identity, c.NavigationService.Active())
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		command, arg := splitCommand(line)

		switch command {
		case "list":
			c.NavigationService.Select(service.ViewList)
			renderList(ctx, c)
		case "refresh":
			c.NavigationService.Select(service.ViewList)
			if err := c.DocumentService.Refresh(ctx); err != nil {
				if !c.SessionService.Active() {
					color.Red("Session expired. Please sign in again.")
					continue
				}
			}
			renderList(ctx, c)
		case "upload":
			c.NavigationService.Select(service.ViewUpload)
			uploadCommand(ctx, c, arg)
		case "ask":
			c.NavigationService.Select(service.ViewAssistant)
			askCommand(ctx, c, arg)
		case "signout":
			c.SessionService.SignOut()
			color.Yellow("Signed out.")
		case "help":
			printHelp()
		case "quit", "exit":
			return
		default:
			color.Red("Unknown command %q. Type 'help'.", command)
		}
	}
}

func loginPrompt(ctx context.Context, c *bootstrap.Container, scanner *bufio.Scanner) bool {
	fmt.Printf("Email [%s]: ", c.Config.Portal.AccountEmail)
	if !scanner.Scan() {
		return false
	}
	email := strings.TrimSpace(scanner.Text())
	if email == "" {
		email = c.Config.Portal.AccountEmail
	}

	fmt.Print("Password: ")
	if !scanner.Scan() {
		return false
	}
	password := scanner.Text()

	c.LoginController.SetCredentials(email, password)
	if err := c.LoginController.Submit(ctx); err != nil {
		color.Red("%s", c.LoginController.Message())
		return true
	}

	color.Green("Signed in as %s", email)
	return true
}

func renderList(ctx context.Context, c *bootstrap.Container) {
	docs := c.DocumentService.Documents()
	if docs == nil && c.DocumentService.LastError() == nil {
		// Nothing fetched yet for this session; collapses with any refresh
		// already running.
		if err := c.DocumentService.Refresh(ctx); err != nil {
			if !c.SessionService.Active() {
				color.Red("Session expired. Please sign in again.")
				return
			}
		}
		docs = c.DocumentService.Documents()
	}

	if err := c.DocumentService.LastError(); err != nil {
		color.Red("Failed to fetch documents: %v", err)
	}

	if len(docs) == 0 {
		color.Yellow("No documents found. Use 'upload <path>' to add a new file.")
		return
	}

	for _, doc := range docs {
		statusColor(doc.Status).Printf("  [%s]", doc.Status)
		fmt.Printf(" %s (uploaded %s)\n", doc.Filename, doc.UploadDate.Format("2006-01-02"))
		summary := "Summary generation pending..."
		if doc.Summary != nil {
			summary = *doc.Summary
		}
		fmt.Printf("      %s\n", summary)
		fmt.Printf("      file: %s\n", doc.CloudPath)
	}
}

func uploadCommand(ctx context.Context, c *bootstrap.Container, path string) {
	if path != "" {
		c.UploadController.SelectFile(path)
	}
	if err := c.UploadController.Submit(ctx); err != nil {
		color.Red("%s", c.UploadController.Message())
		return
	}
	color.Green("%s", c.UploadController.Message())
	renderList(ctx, c)
}

func askCommand(ctx context.Context, c *bootstrap.Container, query string) {
	c.AssistantController.SetQuery(query)
	if err := c.AssistantController.Submit(ctx); err != nil {
		var vErr *controller.ValidationError
		if errors.As(err, &vErr) {
			color.Red("Usage: ask <question>")
			return
		}
		color.Red("%s", c.AssistantController.Message())
		return
	}
	if answer, ok := c.AssistantController.Answer(); ok {
		color.Green("AI Response:")
		fmt.Println(answer)
	}
}

func statusColor(status entity.DocumentStatus) *color.Color {
	switch status {
	case entity.DocumentStatusReviewed:
		return color.New(color.FgGreen)
	case entity.DocumentStatusNew:
		return color.New(color.FgBlue)
	case entity.DocumentStatusProcessing:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgWhite)
	}
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	command := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return command, ""
	}
	return command, strings.TrimSpace(parts[1])
}

func printHelp() {
	fmt.Println(`Commands:
  list            show your documents
  refresh         re-fetch the document list
  upload <path>   upload a document
  ask <question>  ask the AI assistant
  signout         sign out
  quit            exit`)
}
