package businesses

// Status is the lifecycle state of a business.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusBlocked Status = "BLOCKED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusBlocked:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Predefined business categories. Free-text categories are also
// accepted, these are served for dropdowns.
var Categories = []string{
	"Food & Beverage",
	"Clothing & Fashion",
	"Electronics",
	"Books & Stationery",
	"Accessories",
	"Handicrafts",
	"Services",
	"Health & Beauty",
	"Sports & Fitness",
	"Others",
}
