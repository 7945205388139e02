package airbase

import (
	"context"
	"strings"
	"time"

	"github.com/BearBump/CaseDesk/internal/models"
)

const ordersTable = "Orders"

type OrdersRepo struct {
	c *Client
}

func NewOrdersRepo(c *Client) *OrdersRepo {
	return &OrdersRepo{c: c}
}

// GetByPlatformNumber ищет заказ по номеру маркетплейса. Номер встречается
// в двух rollup-полях и в собственном ID заказа, поэтому OR из трёх шаблонов.
func (r *OrdersRepo) GetByPlatformNumber(ctx context.Context, platformOrderNumber string) (*models.Order, error) {
	recs, err := r.c.Query(ctx, ordersTable, QueryOptions{
		Formula: Or(
			SearchIn(platformOrderNumber, "Platform Order Number (from 4Seller)"),
			SearchIn(platformOrderNumber, "Order Number (from 4Seller)"),
			Eq("Order ID_", platformOrderNumber),
		),
		MaxRecords: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return mapOrder(&recs[0]), nil
}

func (r *OrdersRepo) ListByCustomerEmail(ctx context.Context, email string) ([]*models.Order, error) {
	recs, err := r.c.Query(ctx, ordersTable, QueryOptions{
		Formula: Eq("Recipient Email_f", email),
		Sort:    []Sort{{Field: "Order Date", Direction: "desc"}},
	})
	if err != nil {
		return nil, err
	}
	out := make([]*models.Order, 0, len(recs))
	for i := range recs {
		out = append(out, mapOrder(&recs[i]))
	}
	return out, nil
}

// SearchByRecipientName: поиск по имени получателя за последние daysBack дней,
// не больше десяти совпадений.
func (r *OrdersRepo) SearchByRecipientName(ctx context.Context, firstName, lastName, storeCode string, daysBack int, now time.Time) ([]*models.Order, error) {
	if daysBack <= 0 {
		daysBack = 30
	}
	cutoff := now.AddDate(0, 0, -daysBack).Format("2006-01-02")

	parts := []Formula{
		SearchInLower(strings.ToLower(strings.TrimSpace(firstName)), "Recipient First Name_f"),
		SearchInLower(strings.ToLower(strings.TrimSpace(lastName)), "Recipient Name_f"),
	}
	if storeCode != "" {
		parts = append(parts, Eq("Shop Code_f", storeCode))
	}
	parts = append(parts, IsAfter("Order Date", cutoff))

	recs, err := r.c.Query(ctx, ordersTable, QueryOptions{
		Formula:    And(parts...),
		Sort:       []Sort{{Field: "Order Date", Direction: "desc"}},
		MaxRecords: 10,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*models.Order, 0, len(recs))
	for i := range recs {
		out = append(out, mapOrder(&recs[i]))
	}
	return out, nil
}

func mapOrder(rec *Record) *models.Order {
	qty := int(rec.FirstNum("Quantity (from 4Seller)"))
	if qty == 0 {
		qty = 1
	}
	return &models.Order{
		OrderID:             rec.Str("Order ID_"),
		PlatformOrderNumber: rec.FirstStr("Platform Order Number (from 4Seller)"),
		ItemName:            rec.FirstStr("Item Name_f"),
		SKU:                 rec.FirstStr("SKU_f"),
		Quantity:            qty,
		SalesAmount:         rec.Num("Sales Amt"),
		OrderDate:           rec.Str("Order Date"),
		RecipientName:       rec.FirstStr("Recipient Name_f"),
		RecipientAddress:    rec.FirstStr("Recipient Full Address_f"),
		RecipientPhone:      rec.FirstStrPtr("Recipient Phone Number_f"),
		Status:              rec.Str("Status"),
		StoreCode:           rec.FirstStrPtr("Shop Code_f"),

		ShipDate:       rec.StrPtr("Shipper Dropoff Date"),
		LatestShipDate: rec.FirstStrPtr("Latest Ship Date (from 4Seller)"),

		CarrierTrackingNumber:     rec.StrPtr("Tracking# (R)"),
		MarketplaceTrackingNumber: rec.StrPtr("Tracking Number in Marketplace_f"),
		TrackingCarrier:           rec.StrPtr("Tracking Carrier for Shipper"),
		TrackingStatus:            rec.StrPtr("17Track Status"),
		TrackingDetailStatus:      rec.StrPtr("17Track Detail Status"),
		TrackingLastUpdate:        rec.StrPtr("17Track Latest Event time"),
		ExpectedDelivery:          rec.FirstStrPtr("Latest Delivery Date (from 4Seller)"),
		ActualDelivery:            rec.StrPtr("17Track Delivery Date"),
		DaysSinceLastUpdate:       rec.IntPtr("Days Since Last 17Track Update"),

		PlatformOrderStatus:      rec.FirstStrPtr("Platform Order Status (from 4Seller)"),
		FulfillmentStatus:        rec.StrPtr("Fulfillment Status"),
		ShipperFulfillmentStatus: rec.StrPtr("Shipper Fulfilment Status"),
		SupplierOrderNumber:      rec.StrPtr("Supplier Order#"),
		ShipmentDropped:          rec.Bool("Shipment as Dropped"),

		RecordID:     rec.ID,
		ProductID:    rec.FirstStrPtr("HDP Product ID"),
		SupplierLink: rec.FirstStrPtr("Primary Supplier Link (from Linked SKU)"),
	}
}
