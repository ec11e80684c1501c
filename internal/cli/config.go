package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hyswd/mailpeek/internal/config"
	"golang.org/x/term"
)

func (c *ConfigInitCmd) Run(ctx *Context) error {
	fmt.Println("mailpeek Configuration Wizard")
	fmt.Println("=============================")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	cfg := config.DefaultConfig()

	fmt.Printf("IMAP host: ")
	host, _ := reader.ReadString('\n')
	host = strings.TrimSpace(host)
	if host == "" {
		return fmt.Errorf("IMAP host is required")
	}
	cfg.Server.Host = host

	fmt.Printf("IMAP port [%d]: ", config.DefaultIMAPPort)
	portStr, _ := reader.ReadString('\n')
	portStr = strings.TrimSpace(portStr)
	if portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid IMAP port: %s", portStr)
		}
		cfg.Server.Port = port
	}

	fmt.Printf("Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required")
	}
	cfg.Server.Username = username

	fmt.Printf("Folder [%s]: ", config.DefaultFolder)
	folder, _ := reader.ReadString('\n')
	folder = strings.TrimSpace(folder)
	if folder != "" {
		cfg.Defaults.Folder = folder
	}

	fmt.Println()
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	password := string(passwordBytes)
	if password == "" {
		return fmt.Errorf("password is required")
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if err := cfg.Save(""); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if err := cfg.SetPassword(password); err != nil {
		return fmt.Errorf("failed to store password in keyring: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	fmt.Println("Password stored securely in system keyring.")
	fmt.Println()
	fmt.Println("Read your mail with: mailpeek fetch")

	return nil
}

func (c *ConfigShowCmd) Run(ctx *Context) error {
	if ctx.Config == nil {
		return fmt.Errorf("no configuration found - run 'mailpeek config init' first")
	}

	if ctx.Formatter.JSON {
		return ctx.Formatter.PrintJSON(map[string]interface{}{
			"server": map[string]interface{}{
				"host":     ctx.Config.Server.Host,
				"port":     ctx.Config.Server.Port,
				"username": ctx.Config.Server.Username,
			},
			"defaults": map[string]interface{}{
				"folder": ctx.Config.Defaults.Folder,
				"format": ctx.Config.Defaults.Format,
			},
		})
	}

	configPath, _ := config.ConfigPath()
	fmt.Printf("Configuration file: %s\n\n", configPath)

	fmt.Println("Server:")
	fmt.Printf("  Host:     %s\n", ctx.Config.Server.Host)
	fmt.Printf("  Port:     %d\n", ctx.Config.Server.Port)
	fmt.Printf("  Username: %s\n", ctx.Config.Server.Username)

	fmt.Println()
	fmt.Println("Defaults:")
	fmt.Printf("  Folder: %s\n", ctx.Config.Defaults.Folder)
	fmt.Printf("  Format: %s\n", ctx.Config.Defaults.Format)

	_, err := ctx.Config.GetPassword()
	fmt.Println()
	if err != nil {
		fmt.Println("Password: not set (run 'mailpeek config init' to set)")
	} else {
		fmt.Println("Password: ********** (stored in keyring)")
	}

	return nil
}

func (c *ConfigSetCmd) Run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.DefaultConfig()
	}

	parts := strings.Split(c.Key, ".")
	if len(parts) != 2 {
		return fmt.Errorf("invalid key format - use section.key (e.g., server.host, defaults.folder)")
	}

	section, key := parts[0], parts[1]

	switch section {
	case "server":
		switch key {
		case "host":
			ctx.Config.Server.Host = c.Value
		case "port":
			port, err := strconv.Atoi(c.Value)
			if err != nil {
				return fmt.Errorf("invalid port value: %s", c.Value)
			}
			ctx.Config.Server.Port = port
		case "username":
			ctx.Config.Server.Username = c.Value
		default:
			return fmt.Errorf("unknown server key: %s", key)
		}
	case "defaults":
		switch key {
		case "folder":
			ctx.Config.Defaults.Folder = c.Value
		case "format":
			if c.Value != "text" && c.Value != "json" {
				return fmt.Errorf("format must be 'text' or 'json'")
			}
			ctx.Config.Defaults.Format = c.Value
		default:
			return fmt.Errorf("unknown defaults key: %s", key)
		}
	default:
		return fmt.Errorf("unknown section: %s (use 'server' or 'defaults')", section)
	}

	if err := ctx.Config.Save(ctx.Globals.Config); err != nil {
		return err
	}

	ctx.Formatter.PrintSuccess(fmt.Sprintf("Set %s = %s", c.Key, c.Value))
	return nil
}
