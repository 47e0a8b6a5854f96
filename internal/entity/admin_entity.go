package entity

// Admin is static reference data: the authorization list and the fan-out
// targets for payment approval requests.
type Admin struct {
	AdminId     int64
	Username    string
	FirstName   string
	LastName    string
	IsSuperuser bool
}
