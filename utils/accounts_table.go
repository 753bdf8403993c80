package utils

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/labops/labctl/model"
)

func DrawAccountsTable(accounts []model.BillingAccount) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 💳 AVAILABLE BILLING ACCOUNTS"))

	tw := table.Table{}
	tw.AppendHeader(table.Row{"#", "Display Name", "Account", "Linked Projects"})
	for i, account := range accounts {
		tw.AppendRow(table.Row{i + 1, account.DisplayName, account.Name, linkedLabel(account)})
	}
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	fmt.Println(tw.Render())
}

func linkedLabel(account model.BillingAccount) string {
	switch {
	case account.LinkedProjects == 0:
		return "none"
	case account.LinkedProjects < 0:
		return "unknown"
	default:
		return "1+"
	}
}
