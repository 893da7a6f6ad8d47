package cli

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	networthv1 "github.com/simaogato/networth-backend/internal/adapter/grpc/networth/v1"
)

// formatMoney formats a decimal amount string in the given currency.
// Unknown currencies fall back to two decimals followed by the code.
func formatMoney(amount, currency string) string {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}

	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		return value.StringFixed(2) + " " + currency
	}

	minor := value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

func summaryMarkdown(ledger *networthv1.Ledger, currency string) string {
	var b strings.Builder

	b.WriteString("# Net Worth\n\n")
	if ledger.Phase != "READY" {
		fmt.Fprintf(&b, "> Ledger is %s\n\n", strings.ToLower(ledger.Phase))
	} else if ledger.Degraded {
		b.WriteString("> Some collections could not be loaded, figures may be incomplete\n\n")
	}

	b.WriteString("| | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Total assets | %s |\n", formatMoney(ledger.Totals.TotalAssets, currency))
	fmt.Fprintf(&b, "| Total liabilities | %s |\n", formatMoney(ledger.Totals.TotalLiabilities, currency))
	fmt.Fprintf(&b, "| **Net worth** | **%s** |\n\n", formatMoney(ledger.Totals.NetWorth, currency))

	b.WriteString("## Assets\n\n")
	if len(ledger.Assets) == 0 {
		b.WriteString("No assets recorded.\n\n")
	} else {
		b.WriteString("| ID | Category | Description | Value |\n|---|---|---|---:|\n")
		for _, a := range ledger.Assets {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", a.ID, a.Category, escapeCell(a.Description), formatMoney(a.Value, currency))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Liabilities\n\n")
	if len(ledger.Liabilities) == 0 {
		b.WriteString("No liabilities recorded.\n")
	} else {
		b.WriteString("| ID | Category | Description | Amount |\n|---|---|---|---:|\n")
		for _, l := range ledger.Liabilities {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", l.ID, l.Category, escapeCell(l.Description), formatMoney(l.Amount, currency))
		}
	}

	return b.String()
}

func historyMarkdown(entries []networthv1.HistoryEntry, currency string) string {
	var b strings.Builder

	b.WriteString("# Net Worth History\n\n")
	if len(entries) == 0 {
		b.WriteString("No snapshots recorded.\n")
		return b.String()
	}

	b.WriteString("| Date | Assets | Liabilities | Net worth |\n|---|---:|---:|---:|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", e.Date,
			formatMoney(e.TotalAssets, currency),
			formatMoney(e.TotalLiabilities, currency),
			formatMoney(e.NetWorth, currency))
	}
	return b.String()
}

func resultMarkdown(result *networthv1.MutationResult, currency string) string {
	var b strings.Builder

	switch {
	case result.Asset != nil:
		fmt.Fprintf(&b, "Asset `%s` (%s) %s\n\n", result.Asset.ID, result.Asset.Category, formatMoney(result.Asset.Value, currency))
	case result.Liability != nil:
		fmt.Fprintf(&b, "Liability `%s` (%s) %s\n\n", result.Liability.ID, result.Liability.Category, formatMoney(result.Liability.Amount, currency))
	}

	if result.Warning != "" {
		fmt.Fprintf(&b, "> Warning: %s\n", result.Warning)
	} else if result.Entry != nil {
		fmt.Fprintf(&b, "Net worth on %s: **%s**\n", result.Entry.Date, formatMoney(result.Entry.NetWorth, currency))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
