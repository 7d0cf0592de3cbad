package bot

import (
	"fmt"
	"strings"

	"freshnest-bot/internal/pricing"
)

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// formatQuote renders the price breakdown shown at the review step.
func formatQuote(sel pricing.Selection, quote pricing.Quote) string {
	var sb strings.Builder

	svc := pricing.ServiceByID(sel.Service)
	if svc != nil {
		sb.WriteString(fmt.Sprintf("🧽 *%s*\n\n", svc.Name))
	}

	for _, line := range quote.Lines {
		sb.WriteString(fmt.Sprintf("%s: %s\n", line.Label, formatMoney(line.Amount)))
	}
	sb.WriteString(fmt.Sprintf("\nSubtotal: %s\n", formatMoney(quote.Subtotal)))

	if quote.DiscountRate > 0 {
		sb.WriteString(fmt.Sprintf("Recurring discount (%g%%): -%s\n",
			quote.DiscountRate*100, formatMoney(quote.DiscountAmount)))
		sb.WriteString(fmt.Sprintf("\nFirst clean: %s\n", formatMoney(quote.InitialFee)))
		sb.WriteString(fmt.Sprintf("Each clean after: %s\n", formatMoney(quote.RecurringFee)))
	}
	if quote.Tip > 0 {
		sb.WriteString(fmt.Sprintf("Tip: %s\n", formatMoney(quote.Tip)))
	}
	sb.WriteString(fmt.Sprintf("\n*Total: %s*", formatMoney(quote.FinalTotal)))
	return sb.String()
}

// formatBookingSummary renders the final confirmation screen.
func formatBookingSummary(state *BookingState, quote pricing.Quote) string {
	var sb strings.Builder
	sb.WriteString("📋 *Please confirm your booking*\n\n")

	if svc := pricing.ServiceByID(state.Selection.Service); svc != nil {
		sb.WriteString(fmt.Sprintf("Service: %s\n", svc.Name))
	}
	if freq := frequencyLabel(state.Selection.Service, state.Selection.FrequencyID); freq != "" {
		sb.WriteString(fmt.Sprintf("Frequency: %s\n", freq))
	}
	sb.WriteString(fmt.Sprintf("Date: %s\n", state.BookingDate))
	if state.ArrivalWindow != "" {
		sb.WriteString(fmt.Sprintf("Arrival window: %s\n", state.ArrivalWindow))
	}
	sb.WriteString(fmt.Sprintf("Address: %s, %s\n", state.Address, state.PostalCode))
	sb.WriteString(fmt.Sprintf("Name: %s\n", state.Name))
	sb.WriteString(fmt.Sprintf("Email: %s\n", state.Email))
	sb.WriteString(fmt.Sprintf("Phone: %s\n", FormatPhoneNumber(state.PhoneNumber)))
	if state.Notes != "" {
		sb.WriteString(fmt.Sprintf("Notes: %s\n", state.Notes))
	}

	sb.WriteString(fmt.Sprintf("\n*Total: %s*", formatMoney(quote.FinalTotal)))
	if quote.DiscountRate > 0 {
		sb.WriteString(fmt.Sprintf("\nEach clean after: %s", formatMoney(quote.RecurringFee)))
	}
	return sb.String()
}

func frequencyLabel(service pricing.ServiceID, frequencyID string) string {
	for _, f := range pricing.FrequenciesForService(service) {
		if f.ID == frequencyID {
			return f.Label
		}
	}
	return ""
}

// frequencyIDFromLabel reverses the keyboard labels, which may carry a
// "(save N%)" suffix.
func frequencyIDFromLabel(service pricing.ServiceID, label string) string {
	label = strings.TrimSpace(label)
	if i := strings.Index(label, " (save "); i > 0 {
		label = label[:i]
	}
	for _, f := range pricing.FrequenciesForService(service) {
		if f.Label == label {
			return f.ID
		}
	}
	return ""
}
