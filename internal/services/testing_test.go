package services

import (
	"fmt"
	"testing"

	"github.com/Enodevs/speedvoice-backend/internal/db"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedUser(t *testing.T, conn *gorm.DB, email, plan string) *models.User {
	t.Helper()
	u := models.User{Email: email, Username: "test", FullName: "Test User", Password: "hash", Plan: plan}
	if err := conn.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &u
}

func seedBusiness(t *testing.T, conn *gorm.DB, owner *models.User, name string) *models.Business {
	t.Helper()
	b := models.Business{OwnerID: owner.ID, Name: name, Currency: models.CurrencyUSD, Active: true}
	if err := conn.Create(&b).Error; err != nil {
		t.Fatalf("seed business: %v", err)
	}
	owner.ActiveBusinessID = &b.ID
	if err := conn.Model(&models.User{}).Where("id = ?", owner.ID).Update("active_business_id", b.ID).Error; err != nil {
		t.Fatalf("set active business: %v", err)
	}
	return &b
}

func seedCustomer(t *testing.T, conn *gorm.DB, business *models.Business, name, email string) *models.Customer {
	t.Helper()
	c := models.Customer{BusinessID: business.ID, FullName: name, Email: email}
	if err := conn.Create(&c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return &c
}

func seedProduct(t *testing.T, conn *gorm.DB, business *models.Business, name, price string) *models.Product {
	t.Helper()
	p := models.Product{BusinessID: business.ID, Name: name, Price: decimal.RequireFromString(price)}
	if err := conn.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &p
}

func seedInvoice(t *testing.T, conn *gorm.DB, owner *models.User, business *models.Business, customer *models.Customer, title string) *models.Invoice {
	t.Helper()
	inv := models.Invoice{
		OwnerID:    owner.ID,
		BusinessID: business.ID,
		Title:      title,
		Status:     models.InvoiceStatusPending,
	}
	if customer != nil {
		inv.CustomerID = &customer.ID
	}
	if err := conn.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return &inv
}
