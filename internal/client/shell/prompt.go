package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/tranum/internal/currency"
	"github.com/atinyakov/tranum/internal/models"
)

// Prompter asks for one line of input at a time.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Ask prints label and returns the trimmed answer. It returns false once
// input is exhausted.
func (p *Prompter) Ask(label string) (string, bool) {
	if label != "" {
		fmt.Fprint(p.out, label)
	}
	if !p.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.scanner.Text()), true
}

func (p *Prompter) ask(label string) string {
	s, _ := p.Ask(label)
	return s
}

func (p *Prompter) PromptTrip() (models.Trip, error) {
	t := models.Trip{
		From:      p.ask("From: "),
		To:        p.ask("To: "),
		StartDate: p.ask("Start date (YYYY-MM-DD): "),
		EndDate:   p.ask("End date (YYYY-MM-DD): "),
	}
	price, err := currency.ParseAmount(p.ask("Ticket price: "))
	if err != nil {
		return models.Trip{}, fmt.Errorf("ticket price: %w", err)
	}
	t.TicketPrice = models.Price(price)
	t.Currency = p.ask("Currency (e.g. Euro (EUR)): ")
	return t, nil
}

func (p *Prompter) PromptDocument() models.Document {
	return models.Document{
		Name:           p.ask("Name: "),
		IssuingCountry: p.ask("Issuing country: "),
		DocumentNumber: p.ask("Document number: "),
		IssueDate:      p.ask("Issue date (YYYY-MM-DD): "),
		ExpiryDate:     p.ask("Expiry date (YYYY-MM-DD): "),
	}
}

func (p *Prompter) PromptHealthRecord() models.HealthRecord {
	return models.HealthRecord{
		Name:    p.ask("Name: "),
		Details: p.ask("Details: "),
		Doctor:  p.ask("Doctor: "),
		Date:    p.ask("Date (YYYY-MM-DD): "),
	}
}

func (p *Prompter) PromptLuggage() models.Luggage {
	return models.Luggage{TrackingCode: p.ask("Tracking code: ")}
}
