package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"backend/internal/currency"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/repository/memory"

	"github.com/shopspring/decimal"
)

type apptTestEnv struct {
	store      *memory.Store
	appts      AppointmentService
	customerID uint
	serviceID  uint
}

func newApptTestEnv(t *testing.T) *apptTestEnv {
	t.Helper()
	store := memory.New()
	ctx := context.Background()

	customer := &model.Customer{Name: "Zahra Ali", Phone: "0770-111-2233", Active: true}
	if err := store.Customers().Create(ctx, customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	svc := &model.Service{Name: "Haircut", Price: decimal.NewFromInt(50000), Duration: 45, Active: true}
	if err := store.Services().Create(ctx, svc); err != nil {
		t.Fatalf("seed service: %v", err)
	}

	notifier := NewNotifier(store.Notifications(), nil)
	appts := NewAppointmentService(
		store.Appointments(), store.Customers(), store.Services(),
		store.Bills(), store.Transactions(), store.Settings(),
		memory.NewTxManager(), notifier, currency.NewConverter(),
	)
	return &apptTestEnv{store: store, appts: appts, customerID: customer.ID, serviceID: svc.ID}
}

func (e *apptTestEnv) create(t *testing.T, price, discount string) *model.Appointment {
	t.Helper()
	appt, err := e.appts.Create(context.Background(), "Reception", CreateAppointmentRequest{
		CustomerID: e.customerID,
		ServiceID:  e.serviceID,
		Date:       "2026-03-01",
		Time:       "14:30",
		Duration:   45,
		Price:      price,
		Discount:   discount,
	})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	return appt
}

func TestCreateAppointmentDerivesTotal(t *testing.T) {
	env := newApptTestEnv(t)
	appt := env.create(t, "50000", "5000")

	if appt.Status != model.AppointmentPending {
		t.Fatalf("expected pending status, got %s", appt.Status)
	}
	if !appt.TotalPrice.Equal(decimal.NewFromInt(45000)) {
		t.Fatalf("expected total 45000, got %s", appt.TotalPrice)
	}
}

func TestUpdateStatusRejectsInvalidTransitions(t *testing.T) {
	env := newApptTestEnv(t)
	ctx := context.Background()
	appt := env.create(t, "50000", "0")

	if _, err := env.appts.UpdateStatus(ctx, "Reception", appt.ID, model.AppointmentConfirmed); err != nil {
		t.Fatalf("pending to confirmed should succeed: %v", err)
	}
	if _, err := env.appts.UpdateStatus(ctx, "Reception", appt.ID, model.AppointmentPending); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("confirmed to pending should fail with ErrInvalidTransition, got %v", err)
	}

	cancelled := env.create(t, "50000", "0")
	if _, err := env.appts.UpdateStatus(ctx, "Reception", cancelled.ID, model.AppointmentCancelled); err != nil {
		t.Fatalf("pending to cancelled should succeed: %v", err)
	}
	if _, err := env.appts.UpdateStatus(ctx, "Reception", cancelled.ID, model.AppointmentDone); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancelled to done should fail, got %v", err)
	}
}

func TestCollectDepositConvertsAndBooksIncome(t *testing.T) {
	env := newApptTestEnv(t)
	ctx := context.Background()
	appt := env.create(t, "50000", "5000")

	got, err := env.appts.CollectDeposit(ctx, "Reception", appt.ID, CollectDepositRequest{
		Amount:   "10",
		Currency: "USD",
		Method:   "cash",
	})
	if err != nil {
		t.Fatalf("collect deposit: %v", err)
	}
	// 10 USD at the default 1310 rate
	if !got.DepositAmountBase.Equal(decimal.NewFromInt(13100)) {
		t.Fatalf("expected deposit base 13100, got %s", got.DepositAmountBase)
	}
	if !got.DepositPaid {
		t.Fatalf("expected deposit marked paid")
	}

	txs, _, err := env.store.Transactions().List(ctx, repository.TransactionFilter{Type: model.TxIncome}, 1, 10)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 income transaction, got %d", len(txs))
	}
	wantRef := fmt.Sprintf("INC-%d-0001", time.Now().Year())
	if txs[0].Reference != wantRef {
		t.Fatalf("expected reference %s, got %s", wantRef, txs[0].Reference)
	}
	if !txs[0].Amount.Equal(decimal.NewFromInt(13100)) {
		t.Fatalf("expected deposit income 13100, got %s", txs[0].Amount)
	}

	if _, err := env.appts.CollectDeposit(ctx, "Reception", appt.ID, CollectDepositRequest{
		Amount: "5000", Method: "cash",
	}); !errors.Is(err, ErrDepositCollected) {
		t.Fatalf("second deposit should fail with ErrDepositCollected, got %v", err)
	}
}

func TestPayGeneratesBillAndBooksRemainder(t *testing.T) {
	env := newApptTestEnv(t)
	ctx := context.Background()
	appt := env.create(t, "50000", "5000")

	if _, err := env.appts.CollectDeposit(ctx, "Reception", appt.ID, CollectDepositRequest{
		Amount: "10", Currency: "USD", Method: "cash",
	}); err != nil {
		t.Fatalf("collect deposit: %v", err)
	}

	bill, err := env.appts.Pay(ctx, "Reception", appt.ID, PayAppointmentRequest{
		TaxRate: "5",
		Method:  "cash",
	})
	if err != nil {
		t.Fatalf("pay: %v", err)
	}

	wantBillNo := fmt.Sprintf("RCP-%d-00001", time.Now().Year())
	if bill.BillNo != wantBillNo {
		t.Fatalf("expected bill no %s, got %s", wantBillNo, bill.BillNo)
	}
	// subtotal 50000, discount 5000, tax 5% of 45000 = 2250
	if !bill.TaxAmount.Equal(decimal.NewFromInt(2250)) {
		t.Fatalf("expected tax 2250, got %s", bill.TaxAmount)
	}
	if !bill.GrandTotal.Equal(decimal.NewFromInt(47250)) {
		t.Fatalf("expected grand total 47250, got %s", bill.GrandTotal)
	}
	if !bill.DepositAmount.Equal(decimal.NewFromInt(13100)) {
		t.Fatalf("expected deposit 13100, got %s", bill.DepositAmount)
	}
	if !bill.AmountDue.Equal(decimal.NewFromInt(34150)) {
		t.Fatalf("expected amount due 34150, got %s", bill.AmountDue)
	}

	updated, err := env.appts.Get(ctx, appt.ID)
	if err != nil {
		t.Fatalf("get appointment: %v", err)
	}
	if updated.Status != model.AppointmentDone {
		t.Fatalf("expected appointment done, got %s", updated.Status)
	}

	// Deposit income was booked at collection, payment income covers the
	// remainder; together they match the grand total exactly once.
	total, err := env.store.Transactions().SumByType(ctx, model.TxIncome, nil, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("sum income: %v", err)
	}
	if !total.Equal(bill.GrandTotal) {
		t.Fatalf("expected income total %s to equal grand total, got %s", bill.GrandTotal, total)
	}

	if _, err := env.appts.Pay(ctx, "Reception", appt.ID, PayAppointmentRequest{
		TaxRate: "5", Method: "cash",
	}); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("second pay should fail with ErrAlreadyPaid, got %v", err)
	}
}

func TestPayIsIdempotentByKey(t *testing.T) {
	env := newApptTestEnv(t)
	ctx := context.Background()
	appt := env.create(t, "30000", "0")

	first, err := env.appts.Pay(ctx, "Reception", appt.ID, PayAppointmentRequest{
		Method:         "card",
		IdempotencyKey: "pay-30000-once",
	})
	if err != nil {
		t.Fatalf("first pay: %v", err)
	}

	second, err := env.appts.Pay(ctx, "Reception", appt.ID, PayAppointmentRequest{
		Method:         "card",
		IdempotencyKey: "pay-30000-once",
	})
	if err != nil {
		t.Fatalf("retried pay should return the original bill: %v", err)
	}
	if second.ID != first.ID || second.BillNo != first.BillNo {
		t.Fatalf("expected the same bill on retry, got %s and %s", first.BillNo, second.BillNo)
	}

	if _, total, err := env.store.Bills().List(ctx, nil, 1, 10); err != nil || total != 1 {
		t.Fatalf("expected exactly 1 bill, got %d (err %v)", total, err)
	}
}

func TestStatusChangeEmitsNotification(t *testing.T) {
	env := newApptTestEnv(t)
	ctx := context.Background()
	appt := env.create(t, "20000", "0")

	if _, err := env.appts.UpdateStatus(ctx, "Reception", appt.ID, model.AppointmentConfirmed); err != nil {
		t.Fatalf("update status: %v", err)
	}

	notifications, _, err := env.store.Notifications().List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifications) == 0 {
		t.Fatalf("expected notifications after status change")
	}
	if notifications[0].Type != model.NotifAppointmentStatus {
		t.Fatalf("expected newest notification %s, got %s", model.NotifAppointmentStatus, notifications[0].Type)
	}
	if notifications[0].TitleAr == "" || notifications[0].MessageAr == "" {
		t.Fatalf("expected bilingual notification text")
	}
}

func TestBillNumbersSequenceWithinYear(t *testing.T) {
	env := newApptTestEnv(t)
	ctx := context.Background()
	year := time.Now().Year()

	for i := 1; i <= 3; i++ {
		appt := env.create(t, "10000", "0")
		bill, err := env.appts.Pay(ctx, "Reception", appt.ID, PayAppointmentRequest{
			TaxRate: "0",
			Method:  "cash",
		})
		if err != nil {
			t.Fatalf("pay appointment %d: %v", i, err)
		}
		if want := fmt.Sprintf("RCP-%d-%05d", year, i); bill.BillNo != want {
			t.Fatalf("bill %d number = %q, want %q", i, bill.BillNo, want)
		}
	}
}

func TestPayFallsBackToStoredTaxRate(t *testing.T) {
	env := newApptTestEnv(t)
	ctx := context.Background()

	if err := env.store.Settings().SetSetting(ctx, model.PrefTaxRate, "10"); err != nil {
		t.Fatalf("store tax rate preference: %v", err)
	}

	appt := env.create(t, "100000", "0")
	bill, err := env.appts.Pay(ctx, "Reception", appt.ID, PayAppointmentRequest{
		Method: "cash", // no tax_rate in the request
	})
	if err != nil {
		t.Fatalf("pay appointment: %v", err)
	}
	if !bill.TaxAmount.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("tax = %s, want 10000 from the stored preference", bill.TaxAmount)
	}
	if !bill.GrandTotal.Equal(decimal.NewFromInt(110000)) {
		t.Fatalf("grand total = %s, want 110000", bill.GrandTotal)
	}

	// An explicit rate in the request still wins over the preference
	appt2 := env.create(t, "100000", "0")
	bill2, err := env.appts.Pay(ctx, "Reception", appt2.ID, PayAppointmentRequest{
		TaxRate: "0",
		Method:  "cash",
	})
	if err != nil {
		t.Fatalf("pay second appointment: %v", err)
	}
	if !bill2.TaxAmount.IsZero() {
		t.Fatalf("explicit tax_rate=0 should override the preference, got tax %s", bill2.TaxAmount)
	}
}
