package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackwu/shopchat/chatclient"
	"github.com/jackwu/shopchat/config"
	"github.com/jackwu/shopchat/logger"
	"github.com/jackwu/shopchat/store"
	"github.com/jackwu/shopchat/tui"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	apiBase    string
	userID     string
	logLevel   string
	list       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "shopchat",
		Short:         "Terminal chat client for the shop support assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to config.yaml (default: nearest config.yaml above the working directory)")
	cmd.Flags().StringVar(&opts.apiBase, "api", "", "chat backend base URL")
	cmd.Flags().StringVar(&opts.userID, "user", "", "customer id whose conversations are shown")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.list, "list", false, "print past conversations as plain text and exit")
	return cmd
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.apiBase != "" {
		cfg.API.BaseURL = opts.apiBase
	}
	if opts.userID != "" {
		cfg.UserID = opts.userID
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	closer, err := logger.Init(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	client := chatclient.New(cfg.API.BaseURL, cfg.API.Timeout)

	// --list: print conversations as plain text (for testing / scripting)
	if opts.list {
		return printConversations(ctx, client, cfg.UserID, out)
	}

	logger.InfoWithFields("starting chat client", logger.Fields{
		"api":     cfg.API.BaseURL,
		"user_id": cfg.UserID,
	})

	m := tui.NewModel(store.New(), client, cfg.UserID)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func printConversations(ctx context.Context, client *chatclient.Client, userID string, out io.Writer) error {
	convs, err := client.ListConversations(ctx, userID)
	if err != nil {
		return err
	}
	if len(convs) == 0 {
		fmt.Fprintln(out, "No past conversations.")
		return nil
	}
	for _, c := range convs {
		updated := "-"
		if !c.UpdatedAt.IsZero() {
			updated = c.UpdatedAt.Local().Format("01-02 15:04")
		}
		fmt.Fprintf(out, "%-24s │ %s │ %s\n", c.ID, updated, c.DisplayTitle(50))
	}
	return nil
}
