package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/draftflow/draftflow/pkg/ai"
	pkgcmd "github.com/draftflow/draftflow/pkg/cmd"
	"github.com/draftflow/draftflow/pkg/conversation"
	"github.com/draftflow/draftflow/pkg/log"
	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/persistence"
	"github.com/urfave/cli/v3"
)

func runChat(ctx context.Context, command *cli.Command) error {
	log.Setup(command.String("log-level"))
	logger := log.WithModule("chat")

	store := pkgcmd.NewPersistence(ctx, logger, command.String("database-url"))
	defer func() {
		if err := store.Close(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
		}
	}()

	opts := []conversation.Option{
		conversation.WithPersister(persistence.NewFireAndForget(store, logger)),
	}

	if url := command.String("ai-service-url"); url != "" {
		client := ai.NewClient(url)
		opts = append(opts,
			conversation.WithChatService(client),
			conversation.WithFallbackServices(client, client),
		)
	}

	engine := conversation.NewEngine(logger, opts...)
	sess := conversation.NewSession("")

	fmt.Println("Describe the workflow you want to build. Type 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")

		if !scanner.Scan() {
			break
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		if text == "quit" || text == "exit" {
			break
		}

		for _, message := range engine.ProcessUserInput(ctx, sess, text) {
			render(message)
		}

		if sess.Step == models.StepComplete {
			break
		}
	}

	return scanner.Err()
}

func render(message *models.ConversationMessage) {
	if message.Role == models.RoleUser {
		return
	}

	fmt.Println(message.Content)

	if message.Metadata == nil {
		return
	}

	for i, suggestion := range message.Metadata.Suggestions {
		fmt.Printf("  %d. %s (%s)\n", i+1, suggestion.Name, suggestion.Integration)
	}

	if preview := message.Metadata.Preview; preview != nil {
		if preview.Trigger != nil {
			fmt.Printf("  Trigger: %s\n", preview.Trigger.Name)
		}

		for _, action := range preview.Actions {
			fmt.Printf("  %d. %s\n", action.Order+1, action.Name)
		}
	}
}
