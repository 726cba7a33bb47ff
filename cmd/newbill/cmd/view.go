package cmd

import (
	"billed/internal/models"
	"fmt"
	"io"
	"text/tabwriter"
)

// terminalView выводит сообщения формы в stderr.
type terminalView struct {
	w io.Writer
}

func (v *terminalView) ClearFile() {
	fmt.Fprintln(v.w, "Justificatif retiré.")
}

func (v *terminalView) ShowMessage(msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintln(v.w, msg)
}

// deferredNavigator запоминает путь; список рисуется после завершения update.
type deferredNavigator struct {
	path string
}

func (n *deferredNavigator) Navigate(path string) {
	n.path = path
}

func printBills(w io.Writer, bills []models.Bill) {
	fmt.Fprintln(w, "Mes notes de frais")
	if len(bills) == 0 {
		fmt.Fprintln(w, "(aucune)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tNOM\tDATE\tMONTANT\tSTATUT")
	for _, b := range bills {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d €\t%s\n", b.Type, b.Name, b.Date, b.Amount, b.Status)
	}
	tw.Flush()
}
