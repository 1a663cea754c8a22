package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/internal/users"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
)

const (
	defaultCountry  = "PK"
	defaultCurrency = "PKR"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type Service interface {
	Checkout(ctx context.Context, input Input) (*Result, error)
}

type service struct {
	users    users.Repository
	products productLoader
	tx       txRunner
	logg     *logger.Logger

	now  func() time.Time
	rand *rand.Rand
}

func NewService(userRepo users.Repository, products productLoader, tx txRunner, logg *logger.Logger) Service {
	return &service{
		users:    userRepo,
		products: products,
		tx:       tx,
		logg:     logg,
		now:      time.Now,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *service) Checkout(ctx context.Context, input Input) (*Result, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1")
		}
	}

	method := input.PaymentMethod
	if method == "" {
		method = enums.MethodCOD
	}
	if !method.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported payment method")
	}

	var (
		order   *models.Order
		isGuest bool
	)

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.users.WithTx(tx)

		user, created, err := s.findOrCreateUser(ctx, userRepo, email, input)
		if err != nil {
			return err
		}
		isGuest = created

		address := &models.Address{
			UserID:     user.ID,
			FullName:   fallback(input.Address.FullName, user.Name),
			Phone:      input.Address.Phone,
			Line1:      input.Address.Line1,
			Line2:      input.Address.Line2,
			City:       input.Address.City,
			State:      input.Address.State,
			PostalCode: input.Address.PostalCode,
			Country:    fallback(input.Address.Country, defaultCountry),
		}
		if err := tx.WithContext(ctx).Create(address).Error; err != nil {
			return fmt.Errorf("creating address: %w", err)
		}

		items, lineSum, err := s.buildItems(ctx, tx, input.Items)
		if err != nil {
			return err
		}

		// header amounts come from the submission; only the line totals are
		// recomputed, and subtotal and total fall back to the computed sum
		// when the client sent none
		subtotal := input.Subtotal
		if !subtotal.IsPositive() {
			subtotal = lineSum
		}
		total := input.TotalAmount
		if !total.IsPositive() {
			total = subtotal.Add(input.TaxAmount).Add(input.ShippingAmount)
		}

		order = &models.Order{
			OrderNumber:    s.orderNumber(),
			UserID:         user.ID,
			AddressID:      address.ID,
			Status:         enums.OrderPending,
			PaymentStatus:  enums.PaymentPending,
			Subtotal:       subtotal,
			TaxAmount:      input.TaxAmount,
			ShippingAmount: input.ShippingAmount,
			TotalAmount:    total,
			Currency:       defaultCurrency,
			Notes:          input.Notes,
		}
		if err := tx.WithContext(ctx).Create(order).Error; err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order number collision, please retry")
			}
			return fmt.Errorf("creating order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.WithContext(ctx).Create(&items).Error; err != nil {
			return fmt.Errorf("creating order items: %w", err)
		}

		payment := &models.Payment{
			OrderID:        order.ID,
			Method:         method,
			Status:         enums.PaymentPending,
			Amount:         order.TotalAmount,
			Currency:       defaultCurrency,
			CashOnDelivery: method == enums.MethodCOD,
			CODNotes:       input.Notes,
		}
		if err := tx.WithContext(ctx).Create(payment).Error; err != nil {
			return fmt.Errorf("creating payment: %w", err)
		}

		order.Items = items
		order.Payments = []models.Payment{*payment}
		order.Address = address
		order.User = user
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checkout failed")
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_number": order.OrderNumber,
			"total":        order.TotalAmount.String(),
			"guest":        isGuest,
		})
		s.logg.Info(logCtx, "checkout.completed")
	}

	return &Result{Order: order, IsGuest: isGuest}, nil
}

// findOrCreateUser reuses an existing account for the email or creates a
// guest account with no password. A concurrent insert losing the race is
// resolved by refetching.
func (s *service) findOrCreateUser(ctx context.Context, repo users.Repository, email string, input Input) (*models.User, bool, error) {
	user, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !db.IsNotFound(err) {
		return nil, false, fmt.Errorf("looking up user: %w", err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = emailLocalPart(email)
	}

	guest := &models.User{
		Email:    email,
		Password: "",
		Name:     name,
		Phone:    input.Phone,
		Role:     enums.RoleCustomer,
		IsActive: true,
	}
	created, err := repo.Create(ctx, guest)
	if err != nil {
		if db.IsUniqueViolation(err) {
			existing, ferr := repo.GetByEmail(ctx, email)
			if ferr != nil {
				return nil, false, fmt.Errorf("refetching user: %w", ferr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("creating guest user: %w", err)
	}
	return created, true, nil
}

// buildItems snapshots the product name, takes the submitted unit price
// (falling back to the catalog price when none was sent) and recomputes
// every line total server-side.
func (s *service) buildItems(ctx context.Context, tx *gorm.DB, inputs []ItemInput) ([]models.OrderItem, decimal.Decimal, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	subtotal := decimal.Zero

	for _, in := range inputs {
		var product models.Product
		err := tx.WithContext(ctx).Where("id = ?", in.ProductID).First(&product).Error
		if err != nil {
			if db.IsNotFound(err) {
				return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
					WithDetails(map[string]any{"productId": in.ProductID})
			}
			return nil, decimal.Zero, fmt.Errorf("loading product: %w", err)
		}
		if !product.IsActive {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "product is not available").
				WithDetails(map[string]any{"productId": in.ProductID})
		}

		price := in.Price
		if !price.IsPositive() {
			price = product.Price
		}

		total := price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   price,
			Quantity:    in.Quantity,
			Total:       total,
		})
		subtotal = subtotal.Add(total)
	}
	return items, subtotal, nil
}

// orderNumber is ORD-<year>-<4 random digits>. Collisions surface as a
// unique violation on insert; the caller is asked to retry.
func (s *service) orderNumber() string {
	return fmt.Sprintf("ORD-%d-%d", s.now().Year(), 1000+s.rand.Intn(9000))
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
