package facilities

// FacilityStatus controls whether a facility can be assigned to events.
type FacilityStatus string

const (
	FacilityStatusActive   FacilityStatus = "active"
	FacilityStatusInactive FacilityStatus = "inactive"
)

func (s FacilityStatus) IsValid() bool {
	return s == FacilityStatusActive || s == FacilityStatusInactive
}

func (s FacilityStatus) String() string {
	return string(s)
}
