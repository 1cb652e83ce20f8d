package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopsmart/support-agent/internal/domain"
)

func makeTicket() domain.RefundTicket {
	return domain.RefundTicket{
		ID:         1,
		CustomerID: 7,
		OrderID:    2,
		Amount:     120,
		Reason:     "damaged",
		Status:     domain.TicketStatusPendingApproval,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestTicketValidateInvariants_Ok(t *testing.T) {
	ticket := makeTicket()
	if errs := ticket.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestTicketValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(tk *domain.RefundTicket)
		want error
	}{
		{
			name: "no customer",
			mut:  func(tk *domain.RefundTicket) { tk.CustomerID = 0 },
			want: domain.ErrCustomerRequired,
		},
		{
			name: "no order",
			mut:  func(tk *domain.RefundTicket) { tk.OrderID = 0 },
			want: domain.ErrOrderRequired,
		},
		{
			name: "negative amount",
			mut:  func(tk *domain.RefundTicket) { tk.Amount = -1 },
			want: domain.ErrAmountNegative,
		},
		{
			name: "unknown status",
			mut:  func(tk *domain.RefundTicket) { tk.Status = "escalated" },
			want: domain.ErrUnknownTicketStatus,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ticket := makeTicket()
			tc.mut(&ticket)

			errs := ticket.ValidateInvariants()
			found := false
			for _, err := range errs {
				if errors.Is(err, tc.want) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %v among %v", tc.want, errs)
			}
		})
	}
}

func TestTicketStatusIsTerminal(t *testing.T) {
	terminal := map[domain.TicketStatus]bool{
		domain.TicketStatusOpen:            false,
		domain.TicketStatusPendingApproval: false,
		domain.TicketStatusApproved:        true,
		domain.TicketStatusRejected:        true,
		domain.TicketStatusClosed:          false,
	}

	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestParseRefundDecision(t *testing.T) {
	if _, err := domain.ParseRefundDecision("approve"); err != nil {
		t.Fatalf("approve should parse: %v", err)
	}
	if _, err := domain.ParseRefundDecision("reject"); err != nil {
		t.Fatalf("reject should parse: %v", err)
	}
	if _, err := domain.ParseRefundDecision("maybe"); !errors.Is(err, domain.ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
}
