package models

// Vehicle is a preset offered by the settings form to pre-fill the battery
// capacity. Capacity 0 marks the free-input option.
type Vehicle struct {
	Name     string  `json:"name"`
	Capacity float64 `json:"capacity"`
}

// Vehicles returns the preset catalogue, sorted by name with the custom
// option last.
func Vehicles() []Vehicle {
	return []Vehicle{
		{Name: "Dacia Spring Electric", Capacity: 27.4},
		{Name: "Fiat 500e", Capacity: 42},
		{Name: "Hyundai Kona Electric (64 kWh)", Capacity: 64},
		{Name: "Kia e-Niro (64 kWh)", Capacity: 64},
		{Name: "MG ZS EV", Capacity: 44.5},
		{Name: "Peugeot e-208", Capacity: 50},
		{Name: "Renault Zoe E-Tech", Capacity: 52},
		{Name: "Tesla Model 3 (SR+)", Capacity: 55},
		{Name: "Tesla Model 3 Long Range", Capacity: 75},
		{Name: "Tesla Model Y Long Range", Capacity: 75},
		{Name: "Volkswagen ID.3 Pro", Capacity: 58},
		{Name: "Volkswagen ID.3 Pure", Capacity: 45},
		{Name: "Volkswagen ID.4", Capacity: 77},
		{Name: "Autre / Personnalisé", Capacity: 0},
	}
}
