package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product availability for the cart is visible && !reserved. Visible is the
// admin-facing flag, Reserved is set when a committed order holds the item.
type Product struct {
	ID          uuid.UUID `gorm:"primaryKey"             json:"id"`
	Name        string    `gorm:"not null"               json:"name"`
	Description string    `gorm:"not null"               json:"description"`
	Price       float64   `gorm:"not null"               json:"price"`
	ImageURL    string    `json:"image_url"`
	Visible     bool      `gorm:"not null;default:true"  json:"visible"`
	Reserved    bool      `gorm:"not null;default:false" json:"reserved"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Product) Available() bool {
	return p.Visible && !p.Reserved
}

func (Product) TableName() string {
	return "products"
}

type CartLine struct {
	ID        uuid.UUID `gorm:"primaryKey"                                    json:"id"`
	SessionID string    `gorm:"uniqueIndex:idx_session_product;index;not null" json:"session_id"`
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_session_product;not null"      json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"                    json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *CartLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (CartLine) TableName() string {
	return "cart_lines"
}

// CartViewLine is one row of the cart joined against the catalog.
type CartViewLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  uint      `json:"quantity"`
	LineTotal float64   `json:"line_total"`
}

const OrderStatusNew = "new"

type Order struct {
	ID        uuid.UUID   `gorm:"primaryKey"     json:"id"`
	SessionID string      `gorm:"index;not null" json:"session_id"`
	Name      string      `gorm:"not null"       json:"name"`
	Address   string      `gorm:"not null"       json:"address"`
	Phone     string      `json:"phone"`
	Email     string      `gorm:"not null"       json:"email"`
	Total     float64     `gorm:"not null"       json:"total"`
	Status    string      `gorm:"not null"       json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Lines     []OrderLine `gorm:"foreignKey:OrderID" json:"lines"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

type OrderLine struct {
	ID        uuid.UUID `gorm:"primaryKey"     json:"id"`
	OrderID   uuid.UUID `gorm:"index;not null" json:"order_id"`
	ProductID uuid.UUID `gorm:"not null"       json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0" json:"quantity"`
	UnitPrice float64   `gorm:"not null"       json:"unit_price"`
	LineTotal float64   `gorm:"not null"       json:"line_total"`
}

func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (OrderLine) TableName() string {
	return "order_lines"
}

type Customer struct {
	ID      uuid.UUID `gorm:"primaryKey" json:"id"`
	Name    string    `gorm:"not null"   json:"name"`
	Address string    `gorm:"not null"   json:"address"`
	Phone   string    `gorm:"not null"   json:"phone"`
	Email   string    `gorm:"not null"   json:"email"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Customer) TableName() string {
	return "customers"
}

type Contact struct {
	ID      uuid.UUID `gorm:"primaryKey"        json:"id"`
	Name    string    `gorm:"size:100;not null" json:"name"`
	Email   string    `gorm:"size:100;not null" json:"email"`
	Subject string    `gorm:"size:150;not null" json:"subject"`
	Message string    `gorm:"not null"          json:"message"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Contact) TableName() string {
	return "contacts"
}

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"      json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null"        json:"-"`
	Role         string    `gorm:"not null"        json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
