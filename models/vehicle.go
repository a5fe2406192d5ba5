package models

// VehicleType enumerates the fleet's vehicle categories.
type VehicleType string

const (
	VehicleTypeCar   VehicleType = "Car"
	VehicleTypeVan   VehicleType = "Van"
	VehicleTypeJeep  VehicleType = "Jeep"
	VehicleTypeTruck VehicleType = "Truck"
	VehicleTypeCab   VehicleType = "Cab"
)

// DefaultServiceIntervals maps vehicle type to the service interval (km)
// used when the backend does not supply one.
var DefaultServiceIntervals = map[VehicleType]int{
	VehicleTypeCar:   6000,
	VehicleTypeVan:   7000,
	VehicleTypeJeep:  8000,
	VehicleTypeTruck: 12000,
	VehicleTypeCab:   9000,
}

// ServiceIntervalFor returns the default interval for a type, falling back to
// the Car interval for unknown types.
func ServiceIntervalFor(t VehicleType) int {
	if interval, ok := DefaultServiceIntervals[t]; ok {
		return interval
	}
	return DefaultServiceIntervals[VehicleTypeCar]
}

// Vehicle mirrors a vehicle row owned by the fleet backend. Dates arrive as
// ISO strings; expiry classification happens in utils, not here.
type Vehicle struct {
	VehicleID         string      `json:"vehicleId"`
	VehicleNumber     string      `json:"vehicleNumber"`
	VehicleType       VehicleType `json:"vehicleType"`
	Manufacturer      string      `json:"manufacturer"`
	Model             string      `json:"model"`
	LicenseNumber     string      `json:"licenseNumber"`
	LicenseIssueDate  string      `json:"licenseIssueDate,omitempty"`
	LicenseExpiryDate string      `json:"licenseExpiryDate,omitempty"`
	Status            string      `json:"status"`
}
