package models

// Driver mirrors a driver row owned by the fleet backend.
type Driver struct {
	DriverID          string `json:"driverId"`
	Name              string `json:"name"`
	PhoneNumber       string `json:"phoneNumber"`
	LicenseNumber     string `json:"licenseNumber"`
	NIC               string `json:"nic"`
	Address           string `json:"address"`
	EmergencyContact  string `json:"emergencyContact"`
	LicenseExpiryDate string `json:"licenseExpiryDate,omitempty"`
	Status            string `json:"status"`
}
