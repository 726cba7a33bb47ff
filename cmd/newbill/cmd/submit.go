package cmd

import (
	"billed/internal/newbill"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	submitFile string
	fields     newbill.Fields
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Nouvelle note de frais: загрузить чек и отправить форму",
	RunE: func(cmd *cobra.Command, args []string) error {
		if submitFile == "" {
			return errors.New("--file обязателен")
		}
		s, client, err := authorized()
		if err != nil {
			return err
		}

		view := &terminalView{w: cmd.ErrOrStderr()}
		nav := &deferredNavigator{}
		ctrl, err := newbill.NewController(newbill.Options{
			Store:     client,
			Navigator: nav,
			View:      view,
			Session:   s,
		})
		if err != nil {
			return err
		}

		f := newbill.File{Path: submitFile, Name: filepath.Base(submitFile)}
		if newbill.IsAllowedFile(submitFile) {
			data, err := os.ReadFile(submitFile)
			if err != nil {
				return fmt.Errorf("read receipt: %w", err)
			}
			f.Data = data
			f.ContentType = mime.TypeByExtension(filepath.Ext(submitFile))
		}

		if err := ctrl.OnFileSelected(cmd.Context(), f); err != nil {
			return err
		}
		if err := ctrl.OnSubmit(cmd.Context(), fields); err != nil {
			return err
		}
		ctrl.Wait()

		if nav.path != newbill.PathBills {
			return nil
		}
		bills, err := client.List(cmd.Context())
		if err != nil {
			return err
		}
		printBills(cmd.OutOrStdout(), bills)
		return nil
	},
}

func init() {
	f := submitCmd.Flags()
	f.StringVar(&submitFile, "file", "", "чек (jpg, jpeg, png)")
	f.StringVar(&fields.Type, "type", "Transports", "type de dépense")
	f.StringVar(&fields.Name, "name", "", "nom de la dépense")
	f.StringVar(&fields.Amount, "amount", "", "montant TTC")
	f.StringVar(&fields.Date, "date", "", "date (YYYY-MM-DD)")
	f.StringVar(&fields.VAT, "vat", "", "TVA")
	f.StringVar(&fields.Pct, "pct", "", "% TVA (по умолчанию 20)")
	f.StringVar(&fields.Commentary, "commentary", "", "commentaire")
}
