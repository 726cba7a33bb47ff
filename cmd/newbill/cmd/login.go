package cmd

import (
	"billed/internal/billclient"
	"billed/internal/logger"
	"billed/internal/newbill"
	"billed/internal/session"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Вход и сохранение сессии",
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginEmail == "" || loginPassword == "" {
			return errors.New("--email и --password обязательны")
		}
		client := billclient.New(cfg.APIURL, "", cfg.ClientTimeout())
		resp, err := client.Login(cmd.Context(), loginEmail, loginPassword)
		if err != nil {
			return err
		}
		s := newbill.Session{Email: resp.Email, Type: resp.Type, Token: resp.AccessToken}
		if err := session.Save(cfg.SessionFile, s); err != nil {
			return err
		}
		logger.Log.Debug("Сессия сохранена", zap.String("file", cfg.SessionFile))
		fmt.Fprintf(cmd.OutOrStdout(), "Connecté: %s (%s)\n", s.Email, s.Type)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выход: токен в блоклист, сессия удаляется",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session.Load(cfg.SessionFile)
		if errors.Is(err, session.ErrNoSession) {
			return nil
		}
		if err != nil {
			return err
		}
		client := billclient.New(cfg.APIURL, s.Token, cfg.ClientTimeout())
		if err := client.Logout(cmd.Context()); err != nil {
			logger.Log.Warn("Сервер не принял logout", zap.Error(err))
		}
		return session.Clear(cfg.SessionFile)
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "пароль")
}
