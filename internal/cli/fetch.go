package cli

import (
	"fmt"
	"strings"

	"github.com/hyswd/mailpeek/internal/imap"
	"github.com/hyswd/mailpeek/internal/message"
)

func (c *FetchCmd) Run(ctx *Context) error {
	if ctx.Config.Server.Username == "" {
		return fmt.Errorf("not configured - run 'mailpeek config init' first")
	}

	folder := resolveFolder(c.Folder, ctx)

	client, err := imap.NewClient(ctx.Config, ctx.Logger)
	if err != nil {
		return err
	}

	if err := client.Connect(); err != nil {
		return err
	}
	// The session is released on every exit path, including mid-batch
	// fetch failures.
	defer client.Close()

	if err := client.Select(folder); err != nil {
		return err
	}

	ctx.Formatter.Verbosef("Fetching messages from %s...", folder)

	raws, err := client.FetchAll()
	if err != nil {
		return err
	}

	messages, err := message.ParseAll(raws)
	if err != nil {
		return err
	}

	if ctx.Formatter.JSON || ctx.Config.Defaults.Format == "json" {
		return ctx.Formatter.PrintJSON(map[string]interface{}{
			"folder":   folder,
			"count":    len(messages),
			"messages": messages,
		})
	}

	if len(messages) == 0 {
		fmt.Printf("No messages in %s\n", folder)
		return nil
	}

	fmt.Printf("Messages in %s (%d):\n\n", folder, len(messages))

	if c.Body {
		for i, msg := range messages {
			if i > 0 {
				fmt.Println()
				fmt.Println(strings.Repeat("-", 60))
				fmt.Println()
			}
			fmt.Printf("From:    %s\n", msg.From)
			fmt.Printf("Subject: %s\n", msg.Subject)
			fmt.Println()
			fmt.Println(msg.Body)
		}
		return nil
	}

	table := ctx.Formatter.NewTable("FROM", "SUBJECT")
	for _, msg := range messages {
		table.AddRow(truncate(msg.From, 35), truncate(msg.Subject, 60))
	}
	table.Flush()

	return nil
}

// resolveFolder applies the flag > config default > INBOX precedence.
func resolveFolder(flag string, ctx *Context) string {
	if flag != "" {
		return flag
	}
	if ctx.Config.Defaults.Folder != "" {
		return ctx.Config.Defaults.Folder
	}
	return "INBOX"
}

// truncate shortens a string to max length with ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
