// Команда chat-cli — консольный отладчик агента: логинится первым покупателем
// из хранилища и ведёт диалог без HTTP-слоя.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/shopsmart/support-agent/internal/app"
	"github.com/shopsmart/support-agent/internal/llm"
	"github.com/shopsmart/support-agent/internal/refund"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.WarnLevel)

	cfg := app.LoadConfig()
	logger := log.WithField("component", "chat-cli")

	if cfg.LLMAPIKey == "" {
		fmt.Fprintln(os.Stderr, "SUPPORT_LLM_API_KEY is required for the chat CLI")
		os.Exit(1)
	}

	ctx := context.Background()
	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "storage init failed: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	customers, err := deps.Customers.List(ctx)
	if err != nil || len(customers) == 0 {
		fmt.Fprintln(os.Stderr, "no customers found; seed the storage first")
		os.Exit(1)
	}
	customer := customers[0]

	refunds := refund.NewControllerWithoutMetrics(deps.Orders, deps.Tickets, nil, logger)

	provider, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:         cfg.LLMAPIKey,
		BaseURL:        cfg.LLMBaseURL,
		ChatModel:      cfg.LLMChatModel,
		EmbeddingModel: cfg.LLMEmbeddingModel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "llm init failed: %v\n", err)
		os.Exit(1)
	}

	chatAgent, err := app.CreateAgent(provider, deps, refunds, nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "agent init failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("--- ShopSmart CLI Debugger ---")
	fmt.Printf("Logged in as: %s (ID: %d)\n", customer.Name, customer.ID)
	fmt.Println("------------------------------")

	var history []llm.Message
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if lower := strings.ToLower(input); lower == "quit" || lower == "exit" {
			break
		}

		reply, updated, err := chatAgent.Respond(ctx, customer.ID, input, history)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		history = updated
		fmt.Printf("Agent: %s\n\n", reply)
	}
}
