package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/internal/currency"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateAppointmentRequest struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	ServiceID  uint   `json:"service_id" binding:"required"`
	StaffID    *uint  `json:"staff_id"`
	BranchID   *uint  `json:"branch_id"`
	Date       string `json:"date" binding:"required"` // RFC3339 or 2006-01-02
	Time       string `json:"time"`
	Duration   int    `json:"duration"`
	Price      string `json:"price" binding:"required"` // decimal string, base currency
	Discount   string `json:"discount"`
	Notes      string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	StaffID  *uint  `json:"staff_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration int    `json:"duration"`
	Price    string `json:"price"`
	Discount string `json:"discount"`
	Notes    string `json:"notes"`
	// Status, when set and different from the current one, is validated
	// against the lifecycle and produces a status-change notification
	// instead of the generic edit one.
	Status string `json:"status"`
}

type CollectDepositRequest struct {
	Amount   string `json:"amount" binding:"required"` // in Currency
	Currency string `json:"currency"`                  // defaults to base
	Method   string `json:"method" binding:"required"` // cash, card, transfer
}

type PayAppointmentRequest struct {
	TaxRate        string `json:"tax_rate"` // percent, decimal string
	Method         string `json:"method" binding:"required"`
	Currency       string `json:"currency"` // display currency of the payment
	IdempotencyKey string `json:"idempotency_key"`
}

// --- Interface ---

type AppointmentService interface {
	Create(ctx context.Context, actor string, req CreateAppointmentRequest) (*model.Appointment, error)
	Get(ctx context.Context, id uint) (*model.Appointment, error)
	List(ctx context.Context, filter repository.AppointmentFilter, page, limit int) ([]model.Appointment, int64, error)
	Update(ctx context.Context, actor string, id uint, req UpdateAppointmentRequest) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, actor string, id uint, status string) (*model.Appointment, error)
	CollectDeposit(ctx context.Context, actor string, id uint, req CollectDepositRequest) (*model.Appointment, error)
	Pay(ctx context.Context, actor string, id uint, req PayAppointmentRequest) (*model.Bill, error)
	Delete(ctx context.Context, actor string, id uint) error
}

type appointmentService struct {
	apptRepo     repository.AppointmentRepository
	customerRepo repository.CustomerRepository
	serviceRepo  repository.ServiceRepository
	billRepo     repository.BillRepository
	txnRepo      repository.TransactionRepository
	settingsRepo repository.SettingsRepository
	txManager    repository.TransactionManager
	notifier     *Notifier
	converter    *currency.Converter
}

func NewAppointmentService(
	apptRepo repository.AppointmentRepository,
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	billRepo repository.BillRepository,
	txnRepo repository.TransactionRepository,
	settingsRepo repository.SettingsRepository,
	txManager repository.TransactionManager,
	notifier *Notifier,
	converter *currency.Converter,
) AppointmentService {
	return &appointmentService{
		apptRepo:     apptRepo,
		customerRepo: customerRepo,
		serviceRepo:  serviceRepo,
		billRepo:     billRepo,
		txnRepo:      txnRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		notifier:     notifier,
		converter:    converter,
	}
}

// --- Implementation ---

// roundBase rounds to whole units of the base currency, half up
func roundBase(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

func parseAmount(raw, field string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", field, err)
	}
	return d, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (s *appointmentService) Create(ctx context.Context, actor string, req CreateAppointmentRequest) (*model.Appointment, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("customer %d: %w", req.CustomerID, err)
		}
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}
	if _, err := s.serviceRepo.FindByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("service %d: %w", req.ServiceID, err)
		}
		return nil, fmt.Errorf("failed to resolve service: %w", err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	price, err := parseAmount(req.Price, "price")
	if err != nil {
		return nil, err
	}
	discount, err := parseAmount(req.Discount, "discount")
	if err != nil {
		return nil, err
	}

	appt := model.Appointment{
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		StaffID:    req.StaffID,
		BranchID:   req.BranchID,
		Date:       date,
		Time:       req.Time,
		Duration:   req.Duration,
		Price:      roundBase(price),
		Discount:   roundBase(discount),
		TotalPrice: roundBase(price).Sub(roundBase(discount)),
		Status:     model.AppointmentPending,
		Notes:      req.Notes,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.apptRepo.Create(txCtx, &appt); err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		notif := entityChanged(model.NotifAppointment, "created", "تم إنشاء", customer.Name)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *appointmentService) Get(ctx context.Context, id uint) (*model.Appointment, error) {
	return s.apptRepo.FindByID(ctx, id)
}

func (s *appointmentService) List(ctx context.Context, filter repository.AppointmentFilter, page, limit int) ([]model.Appointment, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.apptRepo.List(ctx, filter, page, limit)
}

func (s *appointmentService) Update(ctx context.Context, actor string, id uint, req UpdateAppointmentRequest) (*model.Appointment, error) {
	appt, err := s.apptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A status write that differs is a lifecycle transition, not an edit
	if req.Status != "" && req.Status != appt.Status {
		return s.UpdateStatus(ctx, actor, id, req.Status)
	}

	if req.StaffID != nil {
		appt.StaffID = req.StaffID
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		appt.Date = date
	}
	if req.Time != "" {
		appt.Time = req.Time
	}
	if req.Duration > 0 {
		appt.Duration = req.Duration
	}
	if req.Price != "" {
		price, err := parseAmount(req.Price, "price")
		if err != nil {
			return nil, err
		}
		appt.Price = roundBase(price)
	}
	if req.Discount != "" {
		discount, err := parseAmount(req.Discount, "discount")
		if err != nil {
			return nil, err
		}
		appt.Discount = roundBase(discount)
	}
	if req.Notes != "" {
		appt.Notes = req.Notes
	}
	// TotalPrice is derived, never written independently
	appt.TotalPrice = appt.Price.Sub(appt.Discount)

	customerName := s.customerName(ctx, appt)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.apptRepo.Update(txCtx, appt); err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}
		notif := entityChanged(model.NotifAppointment, "updated", "تم تعديل", customerName)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) UpdateStatus(ctx context.Context, actor string, id uint, status string) (*model.Appointment, error) {
	appt, err := s.apptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if status == appt.Status {
		return appt, nil
	}
	if !CanTransition(appt.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, appt.Status, status)
	}

	customerName := s.customerName(ctx, appt)
	appt.Status = status

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.apptRepo.Update(txCtx, appt); err != nil {
			return fmt.Errorf("failed to update appointment status: %w", err)
		}
		return s.notifier.Append(txCtx, &model.Notification{
			Type:      model.NotifAppointmentStatus,
			Title:     "Appointment status changed",
			TitleAr:   "تغيرت حالة الموعد",
			Message:   fmt.Sprintf("Appointment for %s is now %s", customerName, status),
			MessageAr: fmt.Sprintf("موعد %s أصبح %s", customerName, status),
			ActorName: actor,
		})
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) CollectDeposit(ctx context.Context, actor string, id uint, req CollectDepositRequest) (*model.Appointment, error) {
	appt, err := s.apptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.DepositPaid {
		return nil, ErrDepositCollected
	}

	amount, err := parseAmount(req.Amount, "amount")
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	code := req.Currency
	if code == "" {
		code = currency.BaseCurrency
	}
	amountBase := amount
	if code != currency.BaseCurrency {
		converted, err := s.converter.ConvertToBase(amount, code)
		if err != nil {
			return nil, err
		}
		amountBase = roundBase(converted)
	} else {
		amountBase = roundBase(amount)
	}

	customerName := s.customerName(ctx, appt)

	appt.DepositAmount = amount
	appt.DepositAmountBase = amountBase
	appt.DepositCurrency = code
	appt.DepositPaid = true
	appt.DepositMethod = req.Method

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.apptRepo.Update(txCtx, appt); err != nil {
			return fmt.Errorf("failed to record deposit: %w", err)
		}

		ref, err := nextTransactionRef(txCtx, s.txnRepo, model.TxIncome, time.Now())
		if err != nil {
			return err
		}
		txn := model.Transaction{
			Type:        model.TxIncome,
			Reference:   ref,
			Category:    "deposit",
			Description: fmt.Sprintf("Deposit for appointment #%d (%s)", appt.ID, customerName),
			Amount:      amountBase,
			Method:      req.Method,
			ActorName:   actor,
			BranchID:    appt.BranchID,
			Date:        time.Now(),
		}
		if err := s.txnRepo.Create(txCtx, &txn); err != nil {
			return fmt.Errorf("failed to record deposit income: %w", err)
		}

		return s.notifier.Append(txCtx, &model.Notification{
			Type:      model.NotifIncome,
			Title:     "Deposit collected",
			TitleAr:   "تم استلام عربون",
			Message:   fmt.Sprintf("Deposit of %s received from %s", s.converter.Format(amountBase, currency.BaseCurrency, true), customerName),
			MessageAr: fmt.Sprintf("تم استلام عربون %s من %s", s.converter.Format(amountBase, currency.BaseCurrency, true), customerName),
			Amount:    &amountBase,
			ActorName: actor,
		})
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) Pay(ctx context.Context, actor string, id uint, req PayAppointmentRequest) (*model.Bill, error) {
	appt, err := s.apptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Retried submissions return the already-created bill, so the
	// idempotency lookup runs before any status rejection
	if req.IdempotencyKey != "" {
		if existing, err := s.billRepo.FindByIdempotencyKey(ctx, req.IdempotencyKey); err == nil {
			return existing, nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	if appt.Status == model.AppointmentDone {
		return nil, ErrAlreadyPaid
	}
	if appt.Status == model.AppointmentCancelled {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, appt.Status, model.AppointmentDone)
	}

	// A request without an explicit rate uses the stored tax_rate preference
	rawTaxRate := req.TaxRate
	if rawTaxRate == "" {
		stored, err := s.settingsRepo.GetSetting(ctx, model.PrefTaxRate)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		rawTaxRate = stored
	}
	taxRate, err := parseAmount(rawTaxRate, "tax_rate")
	if err != nil {
		return nil, err
	}

	// Each step rounds to whole base units; compounding error across the
	// price/discount/tax/deposit chain is tolerated, not corrected.
	subtotal := appt.Price
	total := appt.Price.Sub(appt.Discount)
	taxAmount := roundBase(total.Mul(taxRate).Div(decimal.NewFromInt(100)))
	grandTotal := total.Add(taxAmount)
	deposit := decimal.Zero
	if appt.DepositPaid {
		deposit = appt.DepositAmountBase
	}
	amountDue := grandTotal.Sub(deposit)

	customerName := s.customerName(ctx, appt)
	serviceName := ""
	if svc, err := s.serviceRepo.FindByID(ctx, appt.ServiceID); err == nil {
		serviceName = svc.Name
	}
	staffName := ""
	if appt.Staff != nil {
		staffName = appt.Staff.FullName
	}

	payCurrency := req.Currency
	if payCurrency == "" {
		payCurrency = currency.BaseCurrency
	}

	var bill model.Bill
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		billNo, err := nextBillNumber(txCtx, s.billRepo, time.Now())
		if err != nil {
			return err
		}

		bill = model.Bill{
			AppointmentID:   appt.ID,
			CustomerID:      appt.CustomerID,
			BranchID:        appt.BranchID,
			BillNo:          billNo,
			IdempotencyKey:  req.IdempotencyKey,
			CustomerName:    customerName,
			ServiceName:     serviceName,
			StaffName:       staffName,
			Subtotal:        subtotal,
			DiscountAmount:  appt.Discount,
			TaxRate:         taxRate,
			TaxAmount:       taxAmount,
			DepositAmount:   deposit,
			GrandTotal:      grandTotal,
			AmountDue:       amountDue,
			PaymentMethod:   req.Method,
			PaymentCurrency: payCurrency,
			Status:          model.BillPaid,
		}
		if err := s.billRepo.Create(txCtx, &bill); err != nil {
			return fmt.Errorf("failed to create bill: %w", err)
		}

		// The deposit portion was recorded as income at collection time,
		// so only the remainder is booked here.
		ref, err := nextTransactionRef(txCtx, s.txnRepo, model.TxIncome, time.Now())
		if err != nil {
			return err
		}
		txn := model.Transaction{
			Type:        model.TxIncome,
			Reference:   ref,
			Category:    "appointment",
			Description: fmt.Sprintf("Payment for bill %s (%s)", billNo, customerName),
			Amount:      amountDue,
			Method:      req.Method,
			ActorName:   actor,
			BillID:      &bill.ID,
			BranchID:    appt.BranchID,
			Date:        time.Now(),
		}
		if err := s.txnRepo.Create(txCtx, &txn); err != nil {
			return fmt.Errorf("failed to record payment income: %w", err)
		}

		appt.Status = model.AppointmentDone
		appt.TotalPrice = total
		if err := s.apptRepo.Update(txCtx, appt); err != nil {
			return fmt.Errorf("failed to close appointment: %w", err)
		}

		return s.notifier.Append(txCtx, &model.Notification{
			Type:      model.NotifPayment,
			Title:     "Payment received",
			TitleAr:   "تم استلام دفعة",
			Message:   fmt.Sprintf("Bill %s paid: %s by %s", billNo, s.converter.Format(grandTotal, currency.BaseCurrency, true), customerName),
			MessageAr: fmt.Sprintf("تم دفع الفاتورة %s بمبلغ %s من %s", billNo, s.converter.Format(grandTotal, currency.BaseCurrency, true), customerName),
			Amount:    &grandTotal,
			ActorName: actor,
		})
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (s *appointmentService) Delete(ctx context.Context, actor string, id uint) error {
	appt, err := s.apptRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	customerName := s.customerName(ctx, appt)

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.apptRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}
		notif := entityChanged(model.NotifAppointment, "deleted", "تم حذف", customerName)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
}

// customerName resolves the customer display name, falling back to the
// preloaded reference and then to an id placeholder. Missing references
// never fail a mutation.
func (s *appointmentService) customerName(ctx context.Context, appt *model.Appointment) string {
	if appt.Customer != nil {
		return appt.Customer.Name
	}
	if customer, err := s.customerRepo.FindByID(ctx, appt.CustomerID); err == nil {
		return customer.Name
	}
	return fmt.Sprintf("customer #%d", appt.CustomerID)
}
