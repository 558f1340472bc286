// Package commands implements the lostfound terminal client.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/dtroode/lostfound/internal/client"
	"github.com/dtroode/lostfound/internal/config"
	"github.com/dtroode/lostfound/internal/logger"
	"github.com/dtroode/lostfound/internal/terminal"
)

var (
	serverAddr  string
	useTLS      bool
	sessionFile string
	logLevel    int

	log     *logger.Logger
	session *client.Session
	conn    *grpc.ClientConn
	prompt  *terminal.Prompt
)

func Execute() error {
	root := &cobra.Command{
		Use:          "lostfound",
		Short:        "Lost and found marketplace client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewClientConfig()
			if err != nil {
				return err
			}
			flags := cmd.Root().PersistentFlags()
			if flags.Changed("server") {
				cfg.Server = serverAddr
			}
			if flags.Changed("tls") {
				cfg.TLS = useTLS
			}
			if flags.Changed("session-file") {
				cfg.SessionFile = sessionFile
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)

			path := cfg.SessionFile
			if path == "" {
				if path, err = client.DefaultSessionPath(); err != nil {
					return err
				}
			}
			session = client.NewSession(client.NewFileTokenStore(path), log)

			conn, err = client.Dial(cfg.Server, cfg.TLS, session)
			if err != nil {
				return err
			}
			prompt = terminal.NewPrompt(cmd.InOrStdin(), cmd.OutOrStdout())

			log.Debug("Client: configured", "server", cfg.Server, "tls", cfg.TLS, "session_file", path)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if conn == nil {
				return nil
			}
			if err := conn.Close(); err != nil {
				return fmt.Errorf("failed to close connection: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&serverAddr, "server", "", "server address (default localhost:50051, env LOSTFOUND_SERVER)")
	root.PersistentFlags().BoolVar(&useTLS, "tls", false, "connect over TLS (env LOSTFOUND_TLS)")
	root.PersistentFlags().StringVar(&sessionFile, "session-file", "", "where the session is stored (env LOSTFOUND_SESSION_FILE)")
	root.PersistentFlags().IntVar(&logLevel, "log-level", 0, "slog level, -4 debug to 8 error (env LOSTFOUND_LOG_LEVEL)")

	root.AddCommand(registerCmd(), loginCmd(), logoutCmd(), postCmd(), profileCmd())
	return root.Execute()
}

// readMissing prompts for value when the flag was left empty.
func readMissing(value *string, label string) error {
	if *value != "" {
		return nil
	}
	line, err := prompt.ReadLine(label + ": ")
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", label, err)
	}
	*value = line
	return nil
}
