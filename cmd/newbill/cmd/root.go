// Package cmd — команды CLI newbill: вход, выход, новая note de frais, список.
package cmd

import (
	"billed/internal/billclient"
	"billed/internal/config"
	"billed/internal/logger"
	"billed/internal/models"
	"billed/internal/newbill"
	"billed/internal/session"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	debug       bool
	apiURL      string
	sessionFile string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "newbill",
	Short: "Billed: notes de frais из терминала",
	Long: `newbill — клиент Billed для сотрудника.

Example:
  newbill login --email employee@test.tld --password employee
  newbill submit --file ticket.jpg --type Transports --name Taxi --amount 25 --date 2024-03-01 --pct 20
  newbill bills`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.InitCLILogger(debug)

		c, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if apiURL != "" {
			c.APIURL = apiURL
		}
		if sessionFile != "" {
			c.SessionFile = sessionFile
		}
		cfg = c
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "подробный лог в stderr")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "адрес API (по умолчанию BILLED_API_URL)")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session", "", "файл сессии (по умолчанию BILLED_SESSION)")

	rootCmd.AddCommand(loginCmd, logoutCmd, submitCmd, billsCmd)
}

// authorized загружает сессию и возвращает клиент с её токеном.
func authorized() (newbill.Session, *billclient.Client, error) {
	s, err := session.Load(cfg.SessionFile)
	if err != nil {
		return s, nil, err
	}
	if s.Type != "" && s.Type != models.UserTypeEmployee {
		return s, nil, fmt.Errorf("тип пользователя %q не может создавать notes de frais", s.Type)
	}
	return s, billclient.New(cfg.APIURL, s.Token, cfg.ClientTimeout()), nil
}
