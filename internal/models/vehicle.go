package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleCategory string

const (
	VehicleCategoryCar     VehicleCategory = "car"
	VehicleCategoryVan     VehicleCategory = "van"
	VehicleCategorySUV     VehicleCategory = "suv"
	VehicleCategoryBike    VehicleCategory = "bike"
	VehicleCategoryTruck   VehicleCategory = "truck"
	VehicleCategoryScooter VehicleCategory = "scooter"
)

// VehicleLocation carries the display name plus optional coordinates.
// Coordinates may be absent when geocoding failed or was skipped; distance
// sorting ignores vehicles without them.
type VehicleLocation struct {
	Name      string   `json:"name" bson:"name"`
	Latitude  *float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
}

// OwnerContact is a denormalized snapshot of the owner's contact details,
// copied into the vehicle at creation so list/detail views need no join.
// It can go stale if the owner edits their profile afterward.
type OwnerContact struct {
	OwnerID primitive.ObjectID `json:"owner_id" bson:"owner_id"`
	Name    string             `json:"name" bson:"name"`
	Phone   string             `json:"phone" bson:"phone"`
	Email   string             `json:"email" bson:"email"`
	Address string             `json:"address" bson:"address"`
}

type Vehicle struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID       primitive.ObjectID `json:"owner_id" bson:"owner_id" validate:"required"`
	Brand         string             `json:"brand" bson:"brand" validate:"required"`
	Model         string             `json:"model" bson:"model" validate:"required"`
	Category      VehicleCategory    `json:"category" bson:"category"`
	Type          string             `json:"type" bson:"type"`
	LicensePlate  string             `json:"license_plate" bson:"license_plate"`
	EngineNumber  string             `json:"engine_number" bson:"engine_number"`
	ChassisNumber string             `json:"chassis_number" bson:"chassis_number"`
	PricePerDay   float64            `json:"price_per_day" bson:"price_per_day" validate:"required,gte=0"`
	Seats         int                `json:"seats" bson:"seats" validate:"gte=0"`
	Location      VehicleLocation    `json:"location" bson:"location"`
	Description   string             `json:"description" bson:"description"`
	ImageURL      string             `json:"image_url" bson:"image_url"`
	OwnerContact  OwnerContact       `json:"owner_contact" bson:"owner_contact"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

type VehicleRequest struct {
	Brand         string          `json:"brand" validate:"required"`
	Model         string          `json:"model" validate:"required"`
	Category      VehicleCategory `json:"category"`
	Type          string          `json:"type"`
	LicensePlate  string          `json:"license_plate"`
	EngineNumber  string          `json:"engine_number"`
	ChassisNumber string          `json:"chassis_number"`
	PricePerDay   float64         `json:"price_per_day" validate:"required,gte=0"`
	Seats         int             `json:"seats" validate:"gte=0"`
	LocationName  string          `json:"location_name"`
	Latitude      *float64        `json:"latitude"`
	Longitude     *float64        `json:"longitude"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"image_url"`
}

// VehicleSearchParams narrows the catalog list. When Latitude/Longitude are
// both set, results are sorted nearest first.
type VehicleSearchParams struct {
	Category  VehicleCategory `json:"category" form:"category"`
	MaxPrice  float64         `json:"max_price" form:"max_price"`
	MinSeats  int             `json:"min_seats" form:"min_seats"`
	Latitude  *float64        `json:"latitude" form:"latitude"`
	Longitude *float64        `json:"longitude" form:"longitude"`
}
