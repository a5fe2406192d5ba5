package models

// ServiceRecord mirrors a vehicle service entry owned by the fleet backend.
// NextServiceMileage is derived: current mileage plus the interval for the
// vehicle's type.
type ServiceRecord struct {
	ID                 string  `json:"id"`
	VehicleID          string  `json:"vehicleId"`
	ServiceDate        string  `json:"serviceDate,omitempty"`
	CurrentMileage     float64 `json:"currentMileage"`
	ServiceInterval    int     `json:"serviceInterval"`
	NextServiceMileage float64 `json:"nextServiceMileage"`
	ServiceType        string  `json:"serviceType"`
	GarageName         string  `json:"garageName"`
	Cost               float64 `json:"cost"`
	Remarks            string  `json:"remarks"`
}

// WithDerivedMileage fills ServiceInterval and NextServiceMileage from the
// vehicle type when the caller did not supply them.
func (s *ServiceRecord) WithDerivedMileage(vehicleType VehicleType) {
	if s.ServiceInterval == 0 {
		s.ServiceInterval = ServiceIntervalFor(vehicleType)
	}
	if s.NextServiceMileage == 0 {
		s.NextServiceMileage = s.CurrentMileage + float64(s.ServiceInterval)
	}
}
