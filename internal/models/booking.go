package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusApproved BookingStatus = "approved"
	BookingStatusRejected BookingStatus = "rejected"
)

// Booking references a vehicle by id and additionally embeds a snapshot of
// the fields the list view renders, so no join is needed. The snapshot is
// taken at creation and can go stale if the vehicle is edited afterward.
type Booking struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID primitive.ObjectID `json:"vehicle_id" bson:"vehicle_id" validate:"required"`

	// Vehicle snapshot
	VehicleBrand string `json:"vehicle_brand" bson:"vehicle_brand"`
	VehicleModel string `json:"vehicle_model" bson:"vehicle_model"`
	VehicleImage string `json:"vehicle_image" bson:"vehicle_image"`

	// Parties
	OwnerID       primitive.ObjectID `json:"owner_id" bson:"owner_id" validate:"required"`
	OwnerName     string             `json:"owner_name" bson:"owner_name"`
	OwnerContact  string             `json:"owner_contact" bson:"owner_contact"`
	CustomerID    primitive.ObjectID `json:"customer_id" bson:"customer_id" validate:"required"`
	CustomerName  string             `json:"customer_name" bson:"customer_name"`
	CustomerEmail string             `json:"customer_email" bson:"customer_email"`

	// Rental period. Calendar dates; time-of-day is normalized away before
	// pricing.
	StartDate  time.Time     `json:"start_date" bson:"start_date" validate:"required"`
	EndDate    time.Time     `json:"end_date" bson:"end_date" validate:"required"`
	Days       int           `json:"days" bson:"days"`
	TotalPrice float64       `json:"total_price" bson:"total_price"`
	Status     BookingStatus `json:"status" bson:"status" default:"pending"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type BookingRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" validate:"required"`   // YYYY-MM-DD
}

type BookingStatusRequest struct {
	Status BookingStatus `json:"status" validate:"required"`
}

// Quote is the priced result of a validated date range.
type Quote struct {
	Days       int     `json:"days"`
	TotalPrice float64 `json:"total_price"`
}
