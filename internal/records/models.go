package records

import "time"

// LaborCost breaks down per-role labor spending for one harvest.
type LaborCost struct {
	Plucker           float64 `json:"plucker,omitempty" bson:"plucker,omitempty"`
	Gatherer          float64 `json:"gatherer,omitempty" bson:"gatherer,omitempty"`
	Peeler            float64 `json:"peeler,omitempty" bson:"peeler,omitempty"`
	Driver            float64 `json:"driver,omitempty" bson:"driver,omitempty"`
	Buyer             float64 `json:"buyer,omitempty" bson:"buyer,omitempty"`
	Plumber           float64 `json:"plumber,omitempty" bson:"plumber,omitempty"`
	Mechanic          float64 `json:"mechanic,omitempty" bson:"mechanic,omitempty"`
	MaintenanceWorker float64 `json:"maintenanceWorker,omitempty" bson:"maintenanceWorker,omitempty"`
}

// Expense breaks down per-category farm expenses for one harvest.
type Expense struct {
	Fertilizer         float64 `json:"fertilizer,omitempty" bson:"fertilizer,omitempty"`
	MotorMaintenance   float64 `json:"motorMaintenance,omitempty" bson:"motorMaintenance,omitempty"`
	FencingMaintenance float64 `json:"fencingMaintenance,omitempty" bson:"fencingMaintenance,omitempty"`
}

// HarvestRecord is one logged harvest. The id is generated by the
// caller and doubles as the storage key.
type HarvestRecord struct {
	ID           string    `json:"id" bson:"_id"`
	Date         time.Time `json:"date" bson:"date"`
	CoconutCount int       `json:"coconutCount" bson:"coconutCount"`
	TotalWeight  float64   `json:"totalWeight" bson:"totalWeight"` // kg
	SalesPrice   float64   `json:"salesPrice" bson:"salesPrice"`   // per unit
	LaborCosts   LaborCost `json:"laborCosts" bson:"laborCosts"`
	Expenses     Expense   `json:"expenses" bson:"expenses"`
}

// RainfallRecord is one logged rainfall observation in millimeters,
// optionally produced by the retrieval pipeline for a named location.
type RainfallRecord struct {
	ID       string    `json:"id" bson:"_id"`
	Date     time.Time `json:"date" bson:"date"`
	Amount   float64   `json:"amount" bson:"amount"`
	Location string    `json:"location,omitempty" bson:"location,omitempty"`
}

// CustomInterval is a named free-form note about a span of the season.
type CustomInterval struct {
	ID          string `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
}
