package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopsmart/support-agent/internal/domain"
)

// helper для создания корректного заказа.
func makeOrder() domain.Order {
	return domain.Order{
		ID:         1,
		CustomerID: 7,
		ProductID:  3,
		Quantity:   2,
		TotalPrice: 30,
		Status:     domain.OrderStatusProcessing,
		OrderDate:  time.Now().UTC(),
	}
}

func TestOrderValidateInvariants_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
		want error
	}{
		{
			name: "no customer",
			mut:  func(o *domain.Order) { o.CustomerID = 0 },
			want: domain.ErrCustomerRequired,
		},
		{
			name: "no product",
			mut:  func(o *domain.Order) { o.ProductID = 0 },
			want: domain.ErrProductRequired,
		},
		{
			name: "zero quantity",
			mut:  func(o *domain.Order) { o.Quantity = 0 },
			want: domain.ErrQuantityInvalid,
		},
		{
			name: "negative total",
			mut:  func(o *domain.Order) { o.TotalPrice = -0.01 },
			want: domain.ErrAmountNegative,
		},
		{
			name: "unknown status",
			mut:  func(o *domain.Order) { o.Status = "refunded" },
			want: domain.ErrUnknownOrderStatus,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)

			errs := order.ValidateInvariants()
			if len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
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

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"processing", "shipped", "delivered", "returned"} {
		if _, err := domain.ParseOrderStatus(valid); err != nil {
			t.Fatalf("expected %q to parse, got %v", valid, err)
		}
	}

	for _, invalid := range []string{"", "Processing", "refunded", "pending"} {
		if _, err := domain.ParseOrderStatus(invalid); !errors.Is(err, domain.ErrUnknownOrderStatus) {
			t.Fatalf("expected ErrUnknownOrderStatus for %q, got %v", invalid, err)
		}
	}
}
