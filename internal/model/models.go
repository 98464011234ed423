// models.go
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	SubCategory string             `bson:"sub_category" json:"subCategory"`
	Images      []string           `bson:"images" json:"images"`
	Sizes       []string           `bson:"sizes" json:"sizes"`

	// PricingID points at a Pricing document. The repository folds that
	// table into SizePricing on load, so readers only ever see the map.
	PricingID   *primitive.ObjectID `bson:"pricing_id,omitempty" json:"pricingId,omitempty"`
	SizePricing map[string]float64  `bson:"size_pricing,omitempty" json:"sizePricing,omitempty"`

	Discount      float64        `bson:"discount" json:"discount"` // percent, 0-100
	InStock       bool           `bson:"in_stock" json:"inStock"`
	StockQuantity int            `bson:"stock_quantity" json:"stockQuantity"`
	SizeStock     map[string]int `bson:"size_stock,omitempty" json:"sizeStock,omitempty"`
	Bestseller    bool           `bson:"bestseller" json:"bestseller"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type SizePrice struct {
	Size  string  `bson:"size" json:"size"`
	Price float64 `bson:"price" json:"price"`
}

type PriceSnapshot struct {
	BasePrice float64     `bson:"base_price" json:"basePrice"`
	Sizes     []SizePrice `bson:"sizes" json:"sizes"`
	TakenAt   time.Time   `bson:"taken_at" json:"takenAt"`
}

// Pricing is the admin-side write model for per-size prices. Each size is
// unique within the list; History keeps the previous tables.
type Pricing struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	BasePrice float64            `bson:"base_price" json:"basePrice"`
	Sizes     []SizePrice        `bson:"sizes" json:"sizes"`
	History   []PriceSnapshot    `bson:"history,omitempty" json:"history,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Cart maps product id -> size -> quantity. A zero quantity removes the size
// key and an empty size map removes the product key; empty entries are never
// persisted.
type Cart struct {
	UserID    string                    `bson:"user_id" json:"userId"`
	Items     map[string]map[string]int `bson:"items" json:"items"`
	CreatedAt time.Time                 `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time                 `bson:"updated_at" json:"updatedAt"`
}

type Coupon struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code            string             `bson:"code" json:"code"` // stored uppercase
	DiscountPercent float64            `bson:"discount_percent" json:"discountPercent"`
	MinPurchase     float64            `bson:"min_purchase" json:"minPurchase"`
	ExpiresAt       *time.Time         `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
	UsageLimit      int                `bson:"usage_limit" json:"usageLimit"` // 0 = unlimited
	UsageCount      int                `bson:"usage_count" json:"usageCount"`
	Active          bool               `bson:"active" json:"active"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// OrderItem is a snapshot taken at checkout, decoupled from live Product state.
type OrderItem struct {
	ProductID       string  `bson:"product_id" json:"productId"`
	Name            string  `bson:"name" json:"name"`
	Size            string  `bson:"size" json:"size"`
	Quantity        int     `bson:"quantity" json:"quantity"`
	UnitPrice       float64 `bson:"unit_price" json:"unitPrice"`
	DiscountPercent float64 `bson:"discount_percent" json:"discountPercent"`
	LineTotal       float64 `bson:"line_total" json:"lineTotal"`
}

type StatusRecord struct {
	Status     string            `bson:"status" json:"status"`
	StatusCode string            `bson:"status_code" json:"statusCode"`
	Note       string            `bson:"note,omitempty" json:"note,omitempty"`
	ActorType  string            `bson:"actor_type" json:"actorType"` // admin | system | customer
	ActorName  string            `bson:"actor_name,omitempty" json:"actorName,omitempty"`
	Meta       map[string]string `bson:"meta,omitempty" json:"meta,omitempty"`
	CreatedAt  time.Time         `bson:"created_at" json:"createdAt"`
}

// Logistics is derived from the latest relevant history event; fields not
// touched by an update keep their previous value.
type Logistics struct {
	Courier          string     `bson:"courier,omitempty" json:"courier,omitempty"`
	TrackingNumber   string     `bson:"tracking_number,omitempty" json:"trackingNumber,omitempty"`
	ExpectedDelivery *time.Time `bson:"expected_delivery,omitempty" json:"expectedDelivery,omitempty"`
	Warehouse        string     `bson:"warehouse,omitempty" json:"warehouse,omitempty"`
}

type Address struct {
	Line1      string `bson:"line1" json:"line1"`
	Line2      string `bson:"line2,omitempty" json:"line2,omitempty"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postal_code" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
}

type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber string             `bson:"order_number" json:"orderNumber"`
	UserID      string             `bson:"user_id" json:"userId"`
	Items       []OrderItem        `bson:"items" json:"items"`

	Subtotal       float64 `bson:"subtotal" json:"subtotal"`
	CouponCode     string  `bson:"coupon_code,omitempty" json:"couponCode,omitempty"`
	CouponDiscount float64 `bson:"coupon_discount" json:"couponDiscount"`
	DeliveryFee    float64 `bson:"delivery_fee" json:"deliveryFee"`
	Amount         float64 `bson:"amount" json:"amount"`

	Address       Address `bson:"address" json:"address"`
	PaymentMethod string  `bson:"payment_method" json:"paymentMethod"`
	Payment       bool    `bson:"payment" json:"payment"`

	// Status/StatusCode/Logistics mirror the most recent applicable history
	// entry; History itself is append-only.
	Status     string         `bson:"status" json:"status"`
	StatusCode string         `bson:"status_code" json:"statusCode"`
	History    []StatusRecord `bson:"history" json:"history"`
	Logistics  Logistics      `bson:"logistics" json:"logistics"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         string             `bson:"role" json:"role"` // customer | admin

	Address          *Address `bson:"address,omitempty" json:"address,omitempty"`
	SecondaryAddress *Address `bson:"secondary_address,omitempty" json:"secondaryAddress,omitempty"`

	Wishlist []string `bson:"wishlist,omitempty" json:"wishlist,omitempty"`
	Compare  []string `bson:"compare,omitempty" json:"compare,omitempty"`

	ResetToken       string     `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpiry *time.Time `bson:"reset_token_expiry,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Review is one customer's rating of a product; one review per user per
// product, later submissions replace earlier ones.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID string             `bson:"product_id" json:"productId"`
	UserID    string             `bson:"user_id" json:"userId"`
	UserName  string             `bson:"user_name" json:"userName"`
	Rating    int                `bson:"rating" json:"rating"` // 1-5
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Session struct {
	Token     string    `bson:"token" json:"token"`
	UserID    string    `bson:"user_id" json:"userId"`
	ExpiresAt time.Time `bson:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
