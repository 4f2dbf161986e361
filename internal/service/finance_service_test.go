package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"backend/internal/repository"
	"backend/internal/repository/memory"
)

func financeTestEnv() (FinanceService, *memory.Store) {
	store := memory.New()
	notifier := NewNotifier(store.Notifications(), nil)
	svc := NewFinanceService(store.Transactions(), memory.NewTxManager(), notifier)
	return svc, store
}

func TestTransactionReferencesSequencePerType(t *testing.T) {
	svc, _ := financeTestEnv()
	ctx := context.Background()
	year := time.Now().Year()

	inc1, err := svc.CreateTransaction(ctx, "admin", CreateTransactionRequest{
		Type: "income", Category: "other", Amount: "5000",
	})
	if err != nil {
		t.Fatalf("create income: %v", err)
	}
	exp1, err := svc.CreateTransaction(ctx, "admin", CreateTransactionRequest{
		Type: "expense", Category: "rent", Amount: "200000",
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	inc2, err := svc.CreateTransaction(ctx, "admin", CreateTransactionRequest{
		Type: "income", Category: "other", Amount: "3000",
	})
	if err != nil {
		t.Fatalf("create second income: %v", err)
	}

	if want := fmt.Sprintf("INC-%d-0001", year); inc1.Reference != want {
		t.Fatalf("first income reference = %q, want %q", inc1.Reference, want)
	}
	if want := fmt.Sprintf("EXP-%d-0001", year); exp1.Reference != want {
		t.Fatalf("expense reference = %q, want %q (income must not advance it)", exp1.Reference, want)
	}
	if want := fmt.Sprintf("INC-%d-0002", year); inc2.Reference != want {
		t.Fatalf("second income reference = %q, want %q", inc2.Reference, want)
	}
}

func TestCreateTransactionRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := financeTestEnv()
	ctx := context.Background()

	for _, amount := range []string{"0", "-100"} {
		_, err := svc.CreateTransaction(ctx, "admin", CreateTransactionRequest{
			Type: "expense", Category: "rent", Amount: amount,
		})
		if err != ErrInvalidAmount {
			t.Fatalf("amount %q: err = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if _, err := svc.CreateTransaction(ctx, "admin", CreateTransactionRequest{
		Type: "expense", Category: "rent", Amount: "not-a-number",
	}); err == nil {
		t.Fatal("expected error for unparseable amount")
	}
}

func TestSummaryNetsIncomeAgainstExpense(t *testing.T) {
	svc, _ := financeTestEnv()
	ctx := context.Background()

	mustCreate := func(txType, amount string) {
		t.Helper()
		if _, err := svc.CreateTransaction(ctx, "admin", CreateTransactionRequest{
			Type: txType, Category: "other", Amount: amount,
		}); err != nil {
			t.Fatalf("create %s %s: %v", txType, amount, err)
		}
	}
	mustCreate("income", "50000")
	mustCreate("income", "25000")
	mustCreate("expense", "30000")

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	summary, err := svc.Summary(ctx, nil, from, to)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalIncome.String() != "75000" {
		t.Fatalf("total income = %s, want 75000", summary.TotalIncome)
	}
	if summary.TotalExpense.String() != "30000" {
		t.Fatalf("total expense = %s, want 30000", summary.TotalExpense)
	}
	if summary.Net.String() != "45000" {
		t.Fatalf("net = %s, want 45000", summary.Net)
	}
}

func TestTransactionListFiltersByType(t *testing.T) {
	svc, _ := financeTestEnv()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateTransaction(ctx, "admin", CreateTransactionRequest{
			Type: "income", Category: "other", Amount: "1000",
		}); err != nil {
			t.Fatalf("create income: %v", err)
		}
	}
	if _, err := svc.CreateTransaction(ctx, "admin", CreateTransactionRequest{
		Type: "expense", Category: "supplies", Amount: "4000",
	}); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	rows, total, err := svc.List(ctx, repository.TransactionFilter{Type: "expense"}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expense filter returned %d rows (total %d), want 1", len(rows), total)
	}
	if rows[0].Category != "supplies" {
		t.Fatalf("unexpected row category %q", rows[0].Category)
	}
}
