// internal/domain/models/region.go
package models

var orangeCountyCities = [...]string{
	"Aliso Viejo", "Anaheim", "Brea", "Buena Park", "Costa Mesa", "Cypress",
	"Dana Point", "Fountain Valley", "Fullerton", "Garden Grove",
	"Huntington Beach", "Irvine", "La Habra", "La Palma", "Laguna Beach",
	"Laguna Hills", "Laguna Niguel", "Laguna Woods", "Lake Forest",
	"Los Alamitos", "Mission Viejo", "Newport Beach", "Orange", "Placentia",
	"Rancho Santa Margarita", "San Clemente", "San Juan Capistrano",
	"Santa Ana", "Seal Beach", "Stanton", "Tustin", "Villa Park",
	"Westminster", "Yorba Linda",
}

// OrangeCountyCities returns the canonical service-area city list.
// Each call returns a fresh slice.
func OrangeCountyCities() []string {
	out := make([]string, len(orangeCountyCities))
	copy(out, orangeCountyCities[:])
	return out
}
